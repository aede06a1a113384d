package main

import (
	"errors"
	"testing"

	"grabarr/internal/domain/consts"
	"grabarr/internal/models"
)

func TestSummaryExit(t *testing.T) {
	tests := []struct {
		name       string
		summary    *models.BatchSummary
		collection bool
		want       int
	}{
		{"single ok", &models.BatchSummary{Total: 1, Succeeded: []string{"u"}, Files: []string{"f.mp4"}}, false, consts.ExitOK},
		{"single failed", &models.BatchSummary{Total: 1, Failed: []string{"u"}}, false, consts.ExitDownloadFailed},
		{"batch ok", &models.BatchSummary{Total: 2, Succeeded: []string{"a", "b"}}, true, consts.ExitOK},
		{"batch partial", &models.BatchSummary{Total: 2, Succeeded: []string{"a"}, Failed: []string{"b"}}, true, consts.ExitBatchPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := summaryExit(tt.summary, tt.collection)
			if tt.want == consts.ExitOK {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			var ee *exitError
			if !errors.As(err, &ee) {
				t.Fatalf("expected exitError, got %v", err)
			}
			if ee.code != tt.want {
				t.Fatalf("exit code = %d, want %d", ee.code, tt.want)
			}
		})
	}
}
