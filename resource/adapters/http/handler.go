package httpadapter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"resourced/resource/application"
	domainerrors "resourced/resource/domain/errors"
	"resourced/resource/ports"
	httptransport "resourced/resource/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) ListResourcesHandler(ctx context.Context, active *bool) (httptransport.ListResourcesResponse, error) {
	var (
		items []ports.Resource
		err   error
	)
	if active != nil {
		items, err = h.Service.ListByActive(ctx, *active)
	} else {
		items, err = h.Service.List(ctx)
	}
	if err != nil {
		return httptransport.ListResourcesResponse{}, err
	}

	resp := httptransport.ListResourcesResponse{Status: "success"}
	resp.Data = make([]httptransport.ResourceDTO, 0, len(items))
	for _, item := range items {
		resp.Data = append(resp.Data, toResourceDTO(item))
	}
	return resp, nil
}

func (h Handler) GetResourceHandler(ctx context.Context, id string) (httptransport.ResourceResponse, error) {
	item, err := h.Service.GetByID(ctx, id)
	if err != nil {
		return httptransport.ResourceResponse{}, err
	}
	return httptransport.ResourceResponse{Status: "success", Data: toResourceDTO(item)}, nil
}

func (h Handler) GetResourceByCodeHandler(ctx context.Context, code string) (httptransport.ResourceResponse, error) {
	item, err := h.Service.GetByCode(ctx, code)
	if err != nil {
		return httptransport.ResourceResponse{}, err
	}
	return httptransport.ResourceResponse{Status: "success", Data: toResourceDTO(item)}, nil
}

func (h Handler) CreateResourceHandler(ctx context.Context, req httptransport.CreateResourceRequest) (httptransport.ResourceResponse, error) {
	// Keep the field-level detail from validation in the error text; the
	// server's status mapping still matches on the sentinel.
	if err := req.Validate(); err != nil {
		return httptransport.ResourceResponse{}, fmt.Errorf("%w: %s", domainerrors.ErrInvalidRequest, err)
	}

	item, err := h.Service.Create(ctx, ports.CreateResourceInput{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return httptransport.ResourceResponse{}, err
	}
	return httptransport.ResourceResponse{Status: "success", Data: toResourceDTO(item)}, nil
}

func (h Handler) DeleteResourceHandler(ctx context.Context, id string) error {
	return h.Service.Delete(ctx, id)
}

func toResourceDTO(item ports.Resource) httptransport.ResourceDTO {
	return httptransport.ResourceDTO{
		ID:          item.ID,
		Code:        item.Code,
		Name:        item.Name,
		Description: item.Description,
		Active:      item.Active,
		CreatedAt:   item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
