package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendor-onboarding.backend/internal/domain/entities"
	domainerrors "vendor-onboarding.backend/internal/domain/errors"
)

type vendorLookupStub struct {
	lookupFn func(ctx context.Context, raw string) (*entities.VendorLookupResult, error)
}

func (s vendorLookupStub) Lookup(ctx context.Context, raw string) (*entities.VendorLookupResult, error) {
	return s.lookupFn(ctx, raw)
}

func TestVendorHandler_Lookup(t *testing.T) {
	t.Run("bad body", func(t *testing.T) {
		r := newTestRouter()
		h := NewVendorHandler(vendorLookupStub{lookupFn: func(context.Context, string) (*entities.VendorLookupResult, error) {
			t.Fatal("should not be called")
			return nil, nil
		}})
		r.POST("/vendor", h.Lookup)

		w := doJSON(r, http.MethodPost, "/vendor", "{")
		requireErrorCode(t, w, http.StatusBadRequest, domainerrors.CodeInvalidInput)
	})

	t.Run("error mapping", func(t *testing.T) {
		cases := []struct {
			err    error
			status int
			code   string
		}{
			{domainerrors.ErrInvalidDocument, http.StatusBadRequest, domainerrors.CodeInvalidDocument},
			{domainerrors.ErrVendorNotFound, http.StatusNotFound, domainerrors.CodeNotFound},
			{domainerrors.NewStorageError("read vendor status", assert.AnError), http.StatusInternalServerError, domainerrors.CodeStorage},
		}
		for _, tc := range cases {
			r := newTestRouter()
			h := NewVendorHandler(vendorLookupStub{lookupFn: func(context.Context, string) (*entities.VendorLookupResult, error) {
				return nil, tc.err
			}})
			r.POST("/vendor", h.Lookup)

			w := doJSON(r, http.MethodPost, "/vendor", `{"cpfCnpj":"123"}`)
			requireErrorCode(t, w, tc.status, tc.code)
		}
	})

	t.Run("success", func(t *testing.T) {
		merchantID := uuid.New()
		var got string
		r := newTestRouter()
		h := NewVendorHandler(vendorLookupStub{lookupFn: func(_ context.Context, raw string) (*entities.VendorLookupResult, error) {
			got = raw
			return &entities.VendorLookupResult{
				Vendor: &entities.VendorStatusRecord{
					VendorID:   "12345678901",
					Status:     entities.VendorStatusConfirmed,
					MerchantID: &merchantID,
				},
				CanContinue: true,
				Mode:        entities.ModeEdit,
			}, nil
		}})
		r.POST("/vendor", h.Lookup)

		w := doJSON(r, http.MethodPost, "/vendor", `{"cpfCnpj":"123.456.789-01"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "123.456.789-01", got)

		body := decodeBody(t, w)
		assert.Equal(t, true, body["ok"])
		assert.Equal(t, true, body["canContinue"])
		assert.Equal(t, "edit", body["mode"])
		vendor := body["vendor"].(map[string]interface{})
		assert.Equal(t, "12345678901", vendor["vendor_id"])
		assert.Equal(t, "confirmado", vendor["status"])
		assert.Equal(t, merchantID.String(), vendor["merchant_id"])
		assert.Nil(t, vendor["equipment_profile_id"])
	})
}
