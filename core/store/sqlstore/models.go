package sqlstore

import "time"

// DatabaseRow is a catalog database.
type DatabaseRow struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"size:255;index"`
	Enabled   bool
	CreatedAt time.Time
}

func (DatabaseRow) TableName() string { return "relay_databases" }

// CollectionRow is a catalog collection.
type CollectionRow struct {
	ID          string `gorm:"primaryKey;size:36"`
	DatabaseID  string `gorm:"size:36;index"`
	Name        string `gorm:"size:255"`
	Permissions string `gorm:"type:text"`
	CreatedAt   time.Time
}

func (CollectionRow) TableName() string { return "relay_collections" }

// AttributeRow is a catalog attribute. Position keeps creation order.
type AttributeRow struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	CollectionID string `gorm:"size:36;uniqueIndex:idx_collection_key"`
	Key          string `gorm:"size:255;uniqueIndex:idx_collection_key"`
	Type         string `gorm:"size:16"`
	Required     bool
	Array        bool
	Size         int
	Elements     string `gorm:"type:text"`
	Position     int
	CreatedAt    time.Time
}

func (AttributeRow) TableName() string { return "relay_attributes" }

// DocumentRow is a stored document.
type DocumentRow struct {
	ID           string `gorm:"primaryKey;size:36"`
	CollectionID string `gorm:"size:36;index"`
	Data         string `gorm:"type:text"`
	CreatedAt    time.Time
}

func (DocumentRow) TableName() string { return "relay_documents" }

// requiredColumns lists the columns Verify checks per table.
var requiredColumns = map[string][]string{
	"relay_databases":   {"id", "name", "enabled"},
	"relay_collections": {"id", "database_id", "name", "permissions"},
	"relay_attributes":  {"id", "collection_id", "key", "type", "required", "array", "size", "elements", "position"},
	"relay_documents":   {"id", "collection_id", "data"},
}
