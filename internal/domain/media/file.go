package media

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// File is an organization upload counted against the plan's storage limit.
type File struct {
	ID             string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrganizationID uint   `gorm:"not null;index" json:"organization_id"`
	UploadedBy     uint   `gorm:"not null" json:"uploaded_by"`
	Name           string `gorm:"not null" json:"name"`
	ContentType    string `json:"content_type"`
	Size           int64  `gorm:"not null" json:"size"` // bytes
	Path           string `gorm:"not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoragePath places a file under root/<org>/<id><ext>; the client-supplied
// name only contributes its extension.
func StoragePath(root string, orgID uint, id, name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	return filepath.Join(root, fmt.Sprintf("org-%d", orgID), id+ext)
}
