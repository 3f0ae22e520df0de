package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfidenceAdjustmentRejectsOutOfRangeDeltas(t *testing.T) {
	s := &Server{}
	for _, body := range []string{
		`{"delta":0.5}`,
		`{"delta":-0.21}`,
		`{"community_weight_delta":0.5}`,
		`{"community_weight_delta":-0.3}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/arguments/arg-1/confidence", strings.NewReader(body))
		rec := httptest.NewRecorder()
		s.handleArgumentScoped(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		require.Contains(t, rec.Body.String(), "AR-API-4001")
		require.Contains(t, rec.Body.String(), "[-0.2, 0.2]")
	}
}
