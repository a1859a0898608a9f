package httpadapter

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"resourced/resource/adapters/memory"
	"resourced/resource/application"
	domainerrors "resourced/resource/domain/errors"
	"resourced/resource/ports"
	httptransport "resourced/resource/transport/http"
)

type noopPublisher struct{}

func (noopPublisher) Publish(_ context.Context, _ string, _ string, _ any) {}

type staticIDs struct{}

func (staticIDs) NewID(_ context.Context) (string, error) {
	return "res_001", nil
}

func newTestHandler() Handler {
	return Handler{
		Service: application.Service{
			Repo:   memory.NewStore(),
			Cache:  memory.NewCache(),
			Events: noopPublisher{},
			Clock:  ports.SystemClock{},
			IDs:    staticIDs{},
		},
	}
}

func TestCreateResourceHandlerSuccess(t *testing.T) {
	handler := newTestHandler()

	resp, err := handler.CreateResourceHandler(context.Background(), httptransport.CreateResourceRequest{
		Code:        "EX1",
		Name:        "First",
		Description: "optional",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if resp.Data.ID != "res_001" || !resp.Data.Active {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if _, err := time.Parse(time.RFC3339, resp.Data.CreatedAt); err != nil {
		t.Fatalf("created_at not RFC3339: %v", err)
	}
}

func TestCreateResourceHandlerReportsFailingField(t *testing.T) {
	handler := newTestHandler()

	_, err := handler.CreateResourceHandler(context.Background(), httptransport.CreateResourceRequest{
		Code: "X",
		Name: "First",
	})
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
	if !strings.Contains(err.Error(), "code") {
		t.Fatalf("error does not name the failing field: %v", err)
	}
}
