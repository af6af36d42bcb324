package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/timeasy-io/timeasy/internal/infra/blob"
	"github.com/timeasy-io/timeasy/internal/modules/model"
)

var ErrExportUnavailable = errors.New("blob storage is not configured")

// Blob is the part of the object store the export needs.
type Blob interface {
	UploadJSON(ctx context.Context, keyPrefix string, data interface{}) (*blob.UploadedMeta, error)
	PresignGet(ctx context.Context, key string, expire time.Duration) (string, error)
}

type TimesheetDocument struct {
	OwnerUserID string             `json:"owner_user_id"`
	ProjectID   *uuid.UUID         `json:"project_id,omitempty"`
	GeneratedAt time.Time          `json:"generated_at"`
	Items       []*model.TimeEntry `json:"items"`
}

type ExportOutput struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Count     int       `json:"count"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ExportService interface {
	ExportTimeEntries(ctx context.Context, who model.Identity, projectID *uuid.UUID) (*ExportOutput, error)
}

type exportService struct {
	entries TimeEntryService
	blob    Blob
	expire  time.Duration
	clock   Clock
}

// NewExportService returns an export that fails with ErrExportUnavailable when b is nil.
func NewExportService(entries TimeEntryService, b Blob, expire time.Duration, opts ...Option) ExportService {
	o := buildOptions(opts)
	return &exportService{entries: entries, blob: b, expire: expire, clock: o.clock}
}

func (s *exportService) ExportTimeEntries(ctx context.Context, who model.Identity, projectID *uuid.UUID) (*ExportOutput, error) {
	if s.blob == nil {
		return nil, &model.StoreError{Op: "export", Err: ErrExportUnavailable}
	}

	var (
		items []*model.TimeEntry
		err   error
	)
	if projectID != nil {
		items, err = s.entries.ListVisibleOfProject(ctx, *projectID, who)
	} else {
		items, err = s.entries.ListVisible(ctx, who)
	}
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*model.TimeEntry{}
	}

	now := s.clock()
	doc := TimesheetDocument{
		OwnerUserID: who.UserID,
		ProjectID:   projectID,
		GeneratedAt: now,
		Items:       items,
	}
	meta, err := s.blob.UploadJSON(ctx, "exports/"+url.PathEscape(who.UserID), doc)
	if err != nil {
		return nil, &model.StoreError{Op: "export", Err: fmt.Errorf("upload timesheet: %w", err)}
	}
	link, err := s.blob.PresignGet(ctx, meta.Key, s.expire)
	if err != nil {
		return nil, &model.StoreError{Op: "export", Err: fmt.Errorf("presign timesheet: %w", err)}
	}

	return &ExportOutput{
		Key:       meta.Key,
		URL:       link,
		Count:     len(items),
		ExpiresAt: now.Add(s.expire),
	}, nil
}
