package booking

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewerLocation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		query   string
		want    string
		wantErr bool
	}{
		{name: "defaults to server zone", query: "", want: time.Local.String()},
		{name: "resolves IANA name", query: "?tz=Europe/Warsaw", want: "Europe/Warsaw"},
		{name: "rejects unknown zone", query: "?tz=Mars/Olympus", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/bookings/calendar"+tt.query, nil)

			loc, err := viewerLocation(c)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, loc.String())
		})
	}
}
