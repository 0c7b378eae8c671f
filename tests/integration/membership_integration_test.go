// This file covers the alumni registration and verification workflow
// against a real PostgreSQL container, exercising the repositories and
// the membership services together.
package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	membershipapp "github.com/ikada/backend/internal/application/membership"
	"github.com/ikada/backend/internal/domain/membership"
	"github.com/ikada/backend/internal/domain/shared"
	"github.com/ikada/backend/internal/infrastructure/persistence"
	"github.com/ikada/backend/tests/testutil"
)

type membershipFixture struct {
	DB            *TestDB
	AlumniRepo    *persistence.GormAlumniRepository
	SyubiyahRepo  *persistence.GormSyubiyahRepository
	AlumniService *membershipapp.AlumniService
}

func newMembershipFixture(t *testing.T) *membershipFixture {
	t.Helper()

	testDB := NewTestDB(t)
	alumniRepo := persistence.NewGormAlumniRepository(testDB.DB)
	syubiyahRepo := persistence.NewGormSyubiyahRepository(testDB.DB)

	return &membershipFixture{
		DB:            testDB,
		AlumniRepo:    alumniRepo,
		SyubiyahRepo:  syubiyahRepo,
		AlumniService: membershipapp.NewAlumniService(alumniRepo, syubiyahRepo, nil),
	}
}

func (f *membershipFixture) seedSyubiyah(t *testing.T, name string) *membership.Syubiyah {
	t.Helper()

	syubiyah, err := membership.NewSyubiyah(name, "Jawa Timur", "Kediri", "")
	require.NoError(t, err)
	require.NoError(t, f.SyubiyahRepo.Save(context.Background(), syubiyah))
	return syubiyah
}

func TestMembership_RegistrationWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	fixture := newMembershipFixture(t)
	ctx := context.Background()
	syubiyah := fixture.seedSyubiyah(t, "Syubiyah Kediri")

	registered, err := fixture.AlumniService.Register(ctx, membershipapp.RegisterAlumniRequest{
		FullName:       "Ahmad Fauzi",
		Email:          "ahmad.fauzi@example.com",
		Phone:          "081234567890",
		GraduationYear: 2015,
		SyubiyahID:     &syubiyah.ID,
		Address:        "Jl. Raya 1",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", registered.Status)
	require.NotNil(t, registered.SyubiyahID)
	assert.Equal(t, syubiyah.ID, *registered.SyubiyahID)

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := fixture.AlumniService.Register(ctx, membershipapp.RegisterAlumniRequest{
			FullName:       "Another Person",
			Email:          "ahmad.fauzi@example.com",
			GraduationYear: 2016,
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_EMAIL", domainErr.Code)
	})

	t.Run("unknown syubiyah is rejected", func(t *testing.T) {
		missing := testutil.NewTestUUID("missing-syubiyah")
		_, err := fixture.AlumniService.Register(ctx, membershipapp.RegisterAlumniRequest{
			FullName:       "Lost Member",
			Email:          "lost@example.com",
			GraduationYear: 2018,
			SyubiyahID:     &missing,
		})
		require.Error(t, err)
	})

	t.Run("admin verifies the pending registration", func(t *testing.T) {
		adminID := testutil.TestAdminID()
		verified, err := fixture.AlumniService.Verify(ctx, registered.ID, adminID)
		require.NoError(t, err)
		assert.Equal(t, "verified", verified.Status)
		require.NotNil(t, verified.VerifiedBy)
		assert.Equal(t, adminID, *verified.VerifiedBy)
		assert.NotNil(t, verified.VerifiedAt)

		// Verification is not repeatable
		_, err = fixture.AlumniService.Verify(ctx, registered.ID, adminID)
		require.Error(t, err)
	})
}

func TestMembership_RejectionWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	fixture := newMembershipFixture(t)
	ctx := context.Background()

	registered, err := fixture.AlumniService.Register(ctx, membershipapp.RegisterAlumniRequest{
		FullName:       "Budi Santoso",
		Email:          "budi@example.com",
		GraduationYear: 2010,
	})
	require.NoError(t, err)

	rejected, err := fixture.AlumniService.Reject(ctx, registered.ID, testutil.TestAdminID(),
		membershipapp.RejectAlumniRequest{Reason: "Could not confirm graduation records"})
	require.NoError(t, err)
	assert.Equal(t, "rejected", rejected.Status)
	assert.Equal(t, "Could not confirm graduation records", rejected.RejectionReason)
}

func TestMembership_DirectoryFilters(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	fixture := newMembershipFixture(t)
	ctx := context.Background()
	kediri := fixture.seedSyubiyah(t, "Syubiyah Kediri")
	surabaya := fixture.seedSyubiyah(t, "Syubiyah Surabaya")

	seed := []struct {
		name     string
		email    string
		year     int
		syubiyah *membership.Syubiyah
	}{
		{"Alumni Kediri Satu", "k1@example.com", 2010, kediri},
		{"Alumni Kediri Dua", "k2@example.com", 2012, kediri},
		{"Alumni Surabaya", "s1@example.com", 2010, surabaya},
	}
	for _, s := range seed {
		_, err := fixture.AlumniService.Register(ctx, membershipapp.RegisterAlumniRequest{
			FullName:       s.name,
			Email:          s.email,
			GraduationYear: s.year,
			SyubiyahID:     &s.syubiyah.ID,
		})
		require.NoError(t, err)
	}

	t.Run("filter by syubiyah", func(t *testing.T) {
		results, total, err := fixture.AlumniService.List(ctx, membershipapp.AlumniListFilter{
			SyubiyahID: &kediri.ID,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Len(t, results, 2)
	})

	t.Run("filter by graduation year", func(t *testing.T) {
		year := 2010
		_, total, err := fixture.AlumniService.List(ctx, membershipapp.AlumniListFilter{
			GraduationYear: &year,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
	})

	t.Run("search by name", func(t *testing.T) {
		results, _, err := fixture.AlumniService.List(ctx, membershipapp.AlumniListFilter{
			Search: "Surabaya",
		})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Alumni Surabaya", results[0].FullName)
	})

	t.Run("chapter member count", func(t *testing.T) {
		count, err := fixture.AlumniRepo.CountBySyubiyah(ctx, kediri.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)
	})
}
