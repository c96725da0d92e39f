package domain

import (
	"encoding/json"
	"time"
)

const BackupVersion = "1.0"

// Storage keys, one JSON value per key.
const (
	KeyInventoryItems  = "inventoryItems"
	KeyLocations       = "locations"
	KeyProducts        = "products"
	KeyTransfers       = "transfers"
	KeyVendors         = "vendors"
	KeyAudits          = "audits"
	KeyInventoryAlerts = "inventoryAlerts"
	KeyChatRooms       = "chatRooms"
	KeyActiveChatRoom  = "activeChatRoom"
	KeyMeetings        = "meetings"
)

// StorageKeys lists every key a backup covers, in export order.
var StorageKeys = []string{
	KeyInventoryItems,
	KeyLocations,
	KeyProducts,
	KeyTransfers,
	KeyVendors,
	KeyAudits,
	KeyInventoryAlerts,
	KeyChatRooms,
	KeyActiveChatRoom,
	KeyMeetings,
}

// IsStorageKey reports whether key is one of StorageKeys.
func IsStorageKey(key string) bool {
	for _, k := range StorageKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Backup keeps stored values as raw JSON so restore writes back the exact bytes.
type Backup struct {
	Version   string                     `json:"version"`
	Timestamp time.Time                  `json:"timestamp"`
	Data      map[string]json.RawMessage `json:"data"`
}

// ArchivedBackup is a Backup held in the archive.
type ArchivedBackup struct {
	ID        string
	Label     string
	Backup    Backup
	CreatedAt time.Time
}
