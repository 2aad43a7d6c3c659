//revive:disable-next-line:var-naming // legacy package name used across the project
package model

import "time"

// UpdateType tells the mobile app whether an upgrade is mandatory.
type UpdateType string

const (
	UpdateTypeHard UpdateType = "hard"
	UpdateTypeSoft UpdateType = "soft"
)

// AppVersion is one published mobile app release.
type AppVersion struct {
	ID          string     `json:"id"`
	Version     string     `json:"version"`
	Type        UpdateType `json:"type"`
	Changelog   string     `json:"changelog"`
	DownloadURL string     `json:"downloadUrl"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// LatestVersionResponse is the public shape served to the app's update check.
type LatestVersionResponse struct {
	LatestVersion string     `json:"latestVersion"`
	UpdateType    UpdateType `json:"updateType"`
	Changelog     string     `json:"changelog"`
	DownloadURL   string     `json:"downloadUrl"`
}

// LatestResponse projects the release into the update-check payload.
func (v AppVersion) LatestResponse() LatestVersionResponse {
	return LatestVersionResponse{
		LatestVersion: v.Version,
		UpdateType:    v.Type,
		Changelog:     v.Changelog,
		DownloadURL:   v.DownloadURL,
	}
}
