package repository

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

func newID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.New().String())
}

// placeholder numbers a positional SQL parameter when a query is
// assembled from optional filter fragments
func placeholder(n int) string {
	return strconv.Itoa(n)
}
