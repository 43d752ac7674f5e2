package catalog

import "time"

// Album is a container in the catalog tree. Path is the normalized
// slash-separated location ("/vacations/2024"); the root itself is not
// materialized as a row.
type Album struct {
	ID          string  `gorm:"column:id;primaryKey" json:"id"`
	Name        string  `gorm:"column:name" json:"name"`
	Slug        string  `gorm:"column:slug" json:"slug"`
	ParentID    *string `gorm:"column:parent_id" json:"parent_id"`
	Password    *string `gorm:"column:password" json:"-"`
	IsPublic    bool    `gorm:"column:is_public" json:"is_public"`
	CoverFileID *string `gorm:"column:cover_file_id" json:"cover_file_id"`
	Path        string  `gorm:"column:path" json:"path"`
	CreatedAt   string  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   string  `gorm:"column:updated_at" json:"updated_at"`
}

// TableName implements the gorm table naming convention.
func (Album) TableName() string { return "albums" }

// File is a single stored object. Key is the storage-relative key and is
// unique across the catalog. Width, Height, Thumbhash, Tags, Caption,
// SemanticDescription, Aliases, AnnotationUpdatedAt and ExifData are owned
// by the main application; recovery inserts their defaults and never updates
// them.
type File struct {
	ID                  string  `gorm:"column:id;primaryKey" json:"id"`
	Key                 string  `gorm:"column:key" json:"key"`
	OriginalName        string  `gorm:"column:original_name" json:"original_name"`
	Size                int64   `gorm:"column:size" json:"size"`
	MimeType            string  `gorm:"column:mime_type" json:"mime_type"`
	Width               *int    `gorm:"column:width" json:"width"`
	Height              *int    `gorm:"column:height" json:"height"`
	Thumbhash           *string `gorm:"column:thumbhash" json:"thumbhash"`
	Tags                string  `gorm:"column:tags" json:"tags"`
	Caption             *string `gorm:"column:caption" json:"caption"`
	SemanticDescription *string `gorm:"column:semantic_description" json:"semantic_description"`
	Aliases             string  `gorm:"column:aliases" json:"aliases"`
	AnnotationUpdatedAt *string `gorm:"column:annotation_updated_at" json:"annotation_updated_at"`
	ExifData            *string `gorm:"column:exif_data" json:"exif_data"`
	AlbumID             *string `gorm:"column:album_id" json:"album_id"`
	CreatedAt           string  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt           string  `gorm:"column:updated_at" json:"updated_at"`
}

// TableName implements the gorm table naming convention.
func (File) TableName() string { return "files" }

// Tag is a label the main application attaches to files. Recovery never
// writes tags; the model exists for diagnostics and the browse surface.
type Tag struct {
	ID        string `gorm:"column:id;primaryKey" json:"id"`
	Name      string `gorm:"column:name" json:"name"`
	Slug      string `gorm:"column:slug" json:"slug"`
	Color     string `gorm:"column:color" json:"color"`
	CreatedAt string `gorm:"column:created_at" json:"created_at"`
}

// TableName implements the gorm table naming convention.
func (Tag) TableName() string { return "tags" }

// EmptyList is the serialized form of an empty JSON array, used as the
// default for the tags and aliases columns.
const EmptyList = "[]"

// Now returns the current UTC time formatted the way the catalog persists
// timestamps: RFC 3339 with second precision.
func Now() string {
	return time.Now().UTC().Truncate(time.Second).Format(time.RFC3339)
}
