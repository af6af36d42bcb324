package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/timeasy-io/timeasy/internal/infra/blob"
	"github.com/timeasy-io/timeasy/internal/modules/model"
)

type MockBlob struct {
	mock.Mock
}

func (m *MockBlob) UploadJSON(ctx context.Context, keyPrefix string, data interface{}) (*blob.UploadedMeta, error) {
	args := m.Called(ctx, keyPrefix, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blob.UploadedMeta), args.Error(1)
}

func (m *MockBlob) PresignGet(ctx context.Context, key string, expire time.Duration) (string, error) {
	args := m.Called(ctx, key, expire)
	return args.String(0), args.Error(1)
}

func TestExportTimeEntries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := project("u1", "P")
	_, err := f.ps.Add(ctx, p)
	require.NoError(t, err)
	inProject := entry("u1", "in", &p.ID)
	loose := entry("u1", "loose", nil)
	foreign := entry("u2", "foreign", &p.ID)
	for _, e := range []*model.TimeEntry{inProject, loose, foreign} {
		_, err := f.ts.Add(ctx, e)
		require.NoError(t, err)
	}

	tests := []struct {
		name      string
		projectID *uuid.UUID
		wantIDs   []uuid.UUID
	}{
		{"all of caller", nil, []uuid.UUID{inProject.ID, loose.ID}},
		{"one project", &p.ID, []uuid.UUID{inProject.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := new(MockBlob)
			b.On("UploadJSON", mock.Anything, "exports/u1", mock.MatchedBy(func(doc TimesheetDocument) bool {
				return doc.OwnerUserID == "u1" && assert.ElementsMatch(t, tt.wantIDs, ids(doc.Items))
			})).Return(&blob.UploadedMeta{Key: "exports/u1/k.json"}, nil).Once()
			b.On("PresignGet", mock.Anything, "exports/u1/k.json", 15*time.Minute).Return("https://s3/k", nil).Once()

			svc := NewExportService(f.ts, b, 15*time.Minute, WithClock(f.clock.Now))
			out, err := svc.ExportTimeEntries(ctx, owner, tt.projectID)
			require.NoError(t, err)
			assert.Equal(t, "exports/u1/k.json", out.Key)
			assert.Equal(t, "https://s3/k", out.URL)
			assert.Equal(t, len(tt.wantIDs), out.Count)
			b.AssertExpectations(t)
		})
	}
}

func TestExportTimeEntries_Failures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := NewExportService(f.ts, nil, time.Minute).ExportTimeEntries(ctx, owner, nil)
	var storeErr *model.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.ErrorIs(t, err, ErrExportUnavailable)

	b := new(MockBlob)
	b.On("UploadJSON", mock.Anything, "exports/u1", mock.Anything).Return(nil, errors.New("bucket gone"))
	_, err = NewExportService(f.ts, b, time.Minute).ExportTimeEntries(ctx, owner, nil)
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "export", storeErr.Op)
	b.AssertNotCalled(t, "PresignGet", mock.Anything, mock.Anything, mock.Anything)
}
