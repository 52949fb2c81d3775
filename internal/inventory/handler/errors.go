package handler

import (
	"errors"
	"net/http"

	"github.com/sellergenix/inventory-service/internal/inventory"
	"github.com/sellergenix/inventory-service/pkg/response"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func isInvalid(err error) bool {
	return errors.Is(err, errInvalidRequest) ||
		errors.Is(err, inventory.ErrInvalidSettings) ||
		errors.Is(err, inventory.ErrInvalidAdjustment) ||
		errors.Is(err, inventory.ErrInvalidChannel)
}

// grpcError maps domain failures to status codes. Unexpected errors become
// Internal without their message.
func grpcError(err error) error {
	switch {
	case errors.Is(err, inventory.ErrProductNotFound):
		return status.Error(codes.NotFound, err.Error())
	case isInvalid(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, inventory.ErrInsufficientStock):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, inventory.ErrLockNotAcquired):
		return status.Error(codes.Unavailable, err.Error())
	}
	return status.Error(codes.Internal, "internal error")
}

func apiError(err error) *response.APIError {
	switch {
	case errors.Is(err, inventory.ErrProductNotFound):
		return response.NotFound("product")
	case isInvalid(err):
		return response.BadRequest(err.Error())
	case errors.Is(err, inventory.ErrInsufficientStock):
		return response.NewAPIError(err.Error(), http.StatusConflict, "INSUFFICIENT_STOCK")
	case errors.Is(err, inventory.ErrLockNotAcquired):
		return response.NewAPIError(err.Error(), http.StatusServiceUnavailable, "BUSY")
	}
	return response.NewAPIError("internal server error", http.StatusInternalServerError, "INTERNAL")
}
