package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// ==================== SLOT CODE ====================

func GenerateSlotCode() string {
	return uuid.NewString()
}

// ==================== BOOKING REFERENCE ====================

// GenerateBookingReference builds a customer-facing reference.
// Format: BK-YYYYMMDD-XXXXXXXX
func GenerateBookingReference() string {
	datePart := time.Now().Format("20060102")
	randomPart := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])

	return fmt.Sprintf("BK-%s-%s", datePart, randomPart)
}
