package settings

import "context"

type SettingsService interface {
	// Load returns the current snapshot, filling gaps with defaults.
	Load(ctx context.Context) (Settings, error)

	// Get returns the snapshot without credentials.
	Get(ctx context.Context) (SettingsResponse, error)

	// Update validates and persists a full replacement.
	Update(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
}
