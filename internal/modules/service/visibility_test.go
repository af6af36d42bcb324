package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timeasy-io/timeasy/internal/modules/model"
)

var (
	owner    = model.Identity{UserID: "u1"}
	stranger = model.Identity{UserID: "u2"}
	admin    = model.Identity{UserID: "root", IsAdmin: true}
)

func TestFindVisible(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := project("u1", "P")
	_, err := f.ps.Add(ctx, p)
	require.NoError(t, err)
	gone := project("u1", "gone")
	_, err = f.ps.Add(ctx, gone)
	require.NoError(t, err)
	_, err = f.ps.Delete(ctx, gone)
	require.NoError(t, err)

	tests := []struct {
		name    string
		id      uuid.UUID
		who     model.Identity
		visible bool
	}{
		{"owner", p.ID, owner, true},
		{"admin", p.ID, admin, true},
		{"stranger", p.ID, stranger, false},
		{"anonymous", p.ID, model.Identity{}, false},
		{"deleted for owner", gone.ID, owner, false},
		{"deleted for admin", gone.ID, admin, false},
		{"missing", uuid.New(), admin, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.ps.FindVisible(ctx, tt.id, tt.who)
			if tt.visible {
				require.NoError(t, err)
				assert.Equal(t, tt.id, got.ID)
				return
			}
			var missing *model.NotFoundError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.id, missing.ID)
			assert.Nil(t, got)
		})
	}
}

func TestUpdateAs_StrangerSeesNotFoundAndNothingChanges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := project("u1", "mine")
	_, err := f.ps.Add(ctx, p)
	require.NoError(t, err)

	change := *p
	change.Description = "theirs"
	_, err = f.ps.UpdateAs(ctx, &change, stranger)
	var missing *model.NotFoundError
	require.ErrorAs(t, err, &missing)

	_, err = f.ps.DeleteAs(ctx, p.ID, stranger)
	require.ErrorAs(t, err, &missing)

	got, err := f.ps.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Description)
	assert.False(t, got.Deleted)
	assert.True(t, got.UpdatedAt.Equal(p.UpdatedAt))
}

func TestUpdateAs_PinsOwnerAndDeletedFlag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := project("u1", "mine")
	_, err := f.ps.Add(ctx, p)
	require.NoError(t, err)

	change := &model.Project{ID: p.ID, Description: "renamed", Lifecycle: model.Lifecycle{OwnerUserID: "u2", Deleted: true}}
	saved, err := f.ps.UpdateAs(ctx, change, admin)
	require.NoError(t, err)
	assert.Equal(t, "u1", saved.OwnerUserID)
	assert.False(t, saved.Deleted)
	assert.Equal(t, "renamed", saved.Description)
	assert.True(t, saved.CreatedAt.Equal(p.CreatedAt))
}

func TestDeleteAs_Owner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := project("u1", "mine")
	_, err := f.ps.Add(ctx, p)
	require.NoError(t, err)

	saved, err := f.ps.DeleteAs(ctx, p.ID, owner)
	require.NoError(t, err)
	assert.True(t, saved.Deleted)
	assert.Equal(t, "mine", saved.Description)

	_, err = f.ps.DeleteAs(ctx, p.ID, owner)
	var missing *model.NotFoundError
	assert.ErrorAs(t, err, &missing)
}

func TestListVisible(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := project("u1", "a")
	b := project("u2", "b")
	for _, p := range []*model.Project{a, b} {
		_, err := f.ps.Add(ctx, p)
		require.NoError(t, err)
	}

	mine, err := f.ps.ListVisible(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a.ID}, projectIDs(mine))

	all, err := f.ps.ListVisible(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a.ID, b.ID}, projectIDs(all))
}

func TestTimeEntry_ProjectMustExist(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	unknown := uuid.New()
	e := entry("u1", "work", &unknown)
	_, err := f.ts.Add(ctx, e)
	var ref *model.InvalidReferenceError
	require.ErrorAs(t, err, &ref)
	assert.Equal(t, unknown, ref.ID)
	assert.Equal(t, model.KindProject, ref.Kind)

	noProject := entry("u1", "loose", nil)
	_, err = f.ts.Add(ctx, noProject)
	require.NoError(t, err)

	nilRef := uuid.Nil
	zeroRef := entry("u1", "zero", &nilRef)
	_, err = f.ts.Add(ctx, zeroRef)
	require.NoError(t, err)
	assert.Nil(t, zeroRef.ProjectID)

	change := *noProject
	change.ProjectID = &unknown
	_, err = f.ts.UpdateAs(ctx, &change, owner)
	require.ErrorAs(t, err, &ref)
	_, err = f.ts.Update(ctx, &change)
	require.ErrorAs(t, err, &ref)
	_, err = f.ts.Delete(ctx, &change)
	require.ErrorAs(t, err, &ref)
	stored, err := f.ts.FindByID(ctx, noProject.ID)
	require.NoError(t, err)
	assert.False(t, stored.Deleted)
	assert.Nil(t, stored.ProjectID)

	p := project("u1", "P")
	_, err = f.ps.Add(ctx, p)
	require.NoError(t, err)
	change.ProjectID = &p.ID
	saved, err := f.ts.UpdateAs(ctx, &change, owner)
	require.NoError(t, err)
	assert.Equal(t, p.ID, *saved.ProjectID)
}

func TestListVisibleOfProject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := project("u1", "P")
	_, err := f.ps.Add(ctx, p)
	require.NoError(t, err)
	e1 := entry("u1", "one", &p.ID)
	e2 := entry("u2", "two", &p.ID)
	for _, e := range []*model.TimeEntry{e1, e2} {
		_, err := f.ts.Add(ctx, e)
		require.NoError(t, err)
	}

	got, err := f.ts.ListVisibleOfProject(ctx, p.ID, stranger)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{e2.ID}, ids(got))

	got, err = f.ts.ListVisibleOfProject(ctx, p.ID, admin)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{e1.ID, e2.ID}, ids(got))
}
