package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
)

// collectImageFiles gathers every file uploaded under the given form keys.
func collectImageFiles(form *multipart.Form, keys ...string) []*multipart.FileHeader {
	if form == nil {
		return nil
	}

	var result []*multipart.FileHeader
	for _, key := range keys {
		if headers, ok := form.File[key]; ok {
			result = append(result, headers...)
		}
	}
	return result
}

// readImageFile reads at most limit+1 bytes so oversized files are detectable
// without buffering them whole.
func readImageFile(fh *multipart.FileHeader, limit int64) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, limit+1))
}
