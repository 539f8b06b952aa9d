package health

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestReadyWithoutDatabase(t *testing.T) {
	if err := NewService(nil).Ready(context.Background()); err != nil {
		t.Fatalf("expected ready without database, got %v", err)
	}
}

func TestReadyReportsPingFailure(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	if err := NewService(db).Ready(context.Background()); err == nil {
		t.Fatalf("expected ping failure")
	}
}

func TestStatus(t *testing.T) {
	if got := NewService(nil).Status()["status"]; got != "ok" {
		t.Fatalf("unexpected status %q", got)
	}
}
