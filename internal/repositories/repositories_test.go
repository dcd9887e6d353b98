package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharedesk/internal/models"
	"sharedesk/internal/testdb"
)

func TestRebind(t *testing.T) {
	q := `UPDATE spaces SET name = ?, city = ? WHERE id = ?`
	assert.Equal(t, q, DialectMySQL.Rebind(q))
	assert.Equal(t, `UPDATE spaces SET name = $1, city = $2 WHERE id = $3`, DialectPostgres.Rebind(q))
	assert.Equal(t, DialectPostgres, DialectFor("pgx"))
	assert.Equal(t, DialectMySQL, DialectFor("mysql"))
	assert.Equal(t, DialectMySQL, DialectFor("sqlite"))
}

func TestSpaceRepository(t *testing.T) {
	db := testdb.Open(t)
	repo := &SpaceRepository{DB: db}
	ctx := context.Background()

	created, err := repo.CreateSpace(ctx, testdb.Space("Loft", 3, 8, 2))
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := repo.GetSpaceByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, []string{"wifi", "coffee", "parking"}, got.BenefitList())

	_, err = repo.GetSpaceByID(ctx, created.ID+100)
	assert.ErrorIs(t, err, models.ErrSpaceNotFound)

	got.City = "Ohrid"
	_, err = repo.UpdateSpace(ctx, got)
	require.NoError(t, err)
	// An update that changes nothing still succeeds.
	_, err = repo.UpdateSpace(ctx, got)
	require.NoError(t, err)

	got.ID = created.ID + 100
	_, err = repo.UpdateSpace(ctx, got)
	assert.ErrorIs(t, err, models.ErrSpaceNotFound)

	require.NoError(t, repo.UpdateAvailableCapacity(ctx, created.ID, 5))
	got, err = repo.GetSpaceByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.AvailableCapacity)
	assert.Equal(t, "Ohrid", got.City)

	assert.ErrorIs(t, repo.UpdateAvailableCapacity(ctx, created.ID+100, 1), models.ErrSpaceNotFound)

	_, err = repo.CreateSpace(ctx, testdb.Space("Annex", 4, 2, 2))
	require.NoError(t, err)
	all, err := repo.GetSpaces(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	owned, err := repo.GetSpacesByOwner(ctx, 4)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "Annex", owned[0].Name)
}

func TestDeleteSpaceRemovesDependents(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	spaces := &SpaceRepository{DB: db}
	rentals := &RentalRepository{DB: db}
	prefs := &NotificationRepository{DB: db}
	images := &SpaceImageRepository{DB: db}

	space := testdb.SeedSpace(t, db, testdb.Space("Loft", 1, 4, 0))
	_, err := rentals.CreateRental(ctx, models.Rental{
		SpaceID: space.ID, UserID: "9", StartDate: models.NewDate(2024, 1, 1), EndDate: models.NewDate(2024, 1, 2), CustomPrice: 20,
	})
	require.NoError(t, err)
	_, err = prefs.UpsertPreference(ctx, models.NotificationPreference{SpaceID: space.ID, UserID: "9", Email: "n@example.com"})
	require.NoError(t, err)
	_, err = images.AddImage(ctx, models.SpaceImage{SpaceID: space.ID, Path: "a.png", ContentType: "image/png"})
	require.NoError(t, err)

	require.NoError(t, spaces.DeleteSpace(ctx, space.ID))
	for _, table := range []string{"spaces", "rentals", "notification_preferences", "space_images"} {
		assert.Zero(t, testdb.CountRows(t, db, table, ""), table)
	}
	assert.ErrorIs(t, spaces.DeleteSpace(ctx, space.ID), models.ErrSpaceNotFound)
}

func TestRentalRepository(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	repo := &RentalRepository{DB: db}
	space := testdb.SeedSpace(t, db, testdb.Space("Loft", 1, 4, 2))
	other := testdb.SeedSpace(t, db, testdb.Space("Annex", 1, 4, 2))

	created, err := repo.CreateRental(ctx, models.Rental{
		SpaceID: space.ID, UserID: "9", Email: "r@example.com",
		StartDate: models.NewDate(2024, 2, 27), EndDate: models.NewDate(2024, 3, 2), CustomPrice: 55.5,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RentalPending, created.RentalApproval)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetRentalByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-27", got.StartDate.String())
	assert.Equal(t, "2024-03-02", got.EndDate.String())
	assert.Equal(t, 55.5, got.CustomPrice)
	assert.Equal(t, "r@example.com", got.Email)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))

	_, err = repo.CreateRental(ctx, models.Rental{
		SpaceID: other.ID, UserID: "10", StartDate: models.NewDate(2024, 1, 1), EndDate: models.NewDate(2024, 1, 1),
	})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, created.ID, models.RentalApproved))
	// Setting the same status again is a no-op.
	require.NoError(t, repo.UpdateStatus(ctx, created.ID, models.RentalApproved))
	assert.ErrorIs(t, repo.UpdateStatus(ctx, created.ID, "archived"), models.ErrInvalidStatus)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, 999, models.RentalRejected), models.ErrRentalNotFound)

	bySpace, err := repo.GetRentals(ctx, models.RentalFilter{SpaceID: space.ID})
	require.NoError(t, err)
	require.Len(t, bySpace, 1)
	assert.Equal(t, models.RentalApproved, bySpace[0].RentalApproval)

	pending, err := repo.GetRentals(ctx, models.RentalFilter{Status: models.RentalPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "10", pending[0].UserID)

	none, err := repo.GetRentals(ctx, models.RentalFilter{UserID: "nobody"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	require.NoError(t, repo.DeleteRental(ctx, created.ID))
	assert.ErrorIs(t, repo.DeleteRental(ctx, created.ID), models.ErrRentalNotFound)
}

func TestRentalForeignKey(t *testing.T) {
	db := testdb.Open(t)
	repo := &RentalRepository{DB: db}

	_, err := repo.CreateRental(context.Background(), models.Rental{
		SpaceID: 404, UserID: "1", StartDate: models.NewDate(2024, 1, 1), EndDate: models.NewDate(2024, 1, 1),
	})
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err), "got %v", err)
}

func TestUpsertPreferenceKeepsOneRow(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	repo := &NotificationRepository{DB: db}
	space := testdb.SeedSpace(t, db, testdb.Space("Loft", 1, 4, 0))

	first, err := repo.UpsertPreference(ctx, models.NotificationPreference{SpaceID: space.ID, UserID: "5", Email: "old@example.com"})
	require.NoError(t, err)
	second, err := repo.UpsertPreference(ctx, models.NotificationPreference{SpaceID: space.ID, UserID: "5", Email: "new@example.com"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, testdb.CountRows(t, db, "notification_preferences", ""))
	got, err := repo.GetPreference(ctx, space.ID, "5")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", got.Email)

	count, err := repo.CountPreferences(ctx, space.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUniqueViolationDetected(t *testing.T) {
	db := testdb.Open(t)
	space := testdb.SeedSpace(t, db, testdb.Space("Loft", 1, 4, 0))
	insert := `INSERT INTO notification_preferences (space_id, user_id, email) VALUES (?, ?, ?)`

	_, err := db.Exec(insert, space.ID, "5", "a@example.com")
	require.NoError(t, err)
	_, err = db.Exec(insert, space.ID, "5", "a@example.com")
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err), "got %v", err)
	assert.False(t, IsUniqueViolation(nil))
}

func TestPreferenceDeletion(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	repo := &NotificationRepository{DB: db}
	space := testdb.SeedSpace(t, db, testdb.Space("Loft", 1, 4, 0))

	a, err := repo.UpsertPreference(ctx, models.NotificationPreference{SpaceID: space.ID, UserID: "1", Email: "a@example.com"})
	require.NoError(t, err)
	_, err = repo.UpsertPreference(ctx, models.NotificationPreference{SpaceID: space.ID, UserID: "2", Email: "b@example.com"})
	require.NoError(t, err)

	prefs, err := repo.GetPreferencesBySpace(ctx, space.ID)
	require.NoError(t, err)
	require.Len(t, prefs, 2)

	require.NoError(t, repo.DeletePreferenceByID(ctx, a.ID))
	require.NoError(t, repo.DeletePreference(ctx, space.ID, "2"))
	assert.ErrorIs(t, repo.DeletePreference(ctx, space.ID, "2"), models.ErrPreferenceNotFound)
	_, err = repo.GetPreference(ctx, space.ID, "1")
	assert.ErrorIs(t, err, models.ErrPreferenceNotFound)
}

func TestSpaceImages(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	repo := &SpaceImageRepository{DB: db}
	space := testdb.SeedSpace(t, db, testdb.Space("Loft", 1, 4, 0))

	for _, key := range []string{"b.png", "a.jpg"} {
		_, err := repo.AddImage(ctx, models.SpaceImage{SpaceID: space.ID, Path: key, ContentType: "image/png"})
		require.NoError(t, err)
	}
	images, err := repo.GetImagesBySpace(ctx, space.ID)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, "b.png", images[0].Path)
	assert.Equal(t, "a.jpg", images[1].Path)
	assert.False(t, images[0].CreatedAt.IsZero())
}
