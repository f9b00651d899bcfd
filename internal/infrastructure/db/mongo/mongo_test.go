package mongo

import (
	"context"
	"testing"
	"time"
)

func TestConnect_InvalidURI(t *testing.T) {
	_, _, err := Connect(context.Background(), Config{
		URI:      "not-a-mongodb-uri",
		Database: "messagely",
		Timeout:  time.Second,
	})
	if err == nil {
		t.Fatalf("expected an error for an invalid URI")
	}
}
