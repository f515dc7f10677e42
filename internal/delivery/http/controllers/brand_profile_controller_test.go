package controllers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandexpo/internal/domain"
)

// fakeBrandProfileService implements domain.BrandProfileService for handler tests.
type fakeBrandProfileService struct {
	getResult        *domain.BrandProfile
	getErr           error
	createErr        error
	lastCreated      *domain.BrandProfile
	uploadURL        string
	uploadErr        error
	lastUploadedName string
	lastUploadedBody []byte
}

func (f *fakeBrandProfileService) GetMyBrandProfile(ctx context.Context, actor domain.Actor) (*domain.BrandProfile, error) {
	return f.getResult, f.getErr
}

func (f *fakeBrandProfileService) CreateBrandProfile(ctx context.Context, actor domain.Actor, bp *domain.BrandProfile) error {
	f.lastCreated = bp
	if f.createErr != nil {
		return f.createErr
	}
	bp.ID = "bp-new"
	bp.UserID = actor.ID
	return nil
}

func (f *fakeBrandProfileService) UpdateBrandProfile(ctx context.Context, actor domain.Actor, upd domain.BrandProfileUpdate) (*domain.BrandProfile, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeBrandProfileService) DeleteBrandProfile(ctx context.Context, actor domain.Actor) error {
	return nil
}

func (f *fakeBrandProfileService) UploadProductImage(ctx context.Context, actor domain.Actor, filename string, body io.Reader) (string, error) {
	f.lastUploadedName = filename
	f.lastUploadedBody, _ = io.ReadAll(body)
	return f.uploadURL, f.uploadErr
}

func (f *fakeBrandProfileService) UploadBusinessRegistration(ctx context.Context, actor domain.Actor, filename string, body io.Reader) (string, error) {
	f.lastUploadedName = filename
	f.lastUploadedBody, _ = io.ReadAll(body)
	return f.uploadURL, f.uploadErr
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func TestBrandProfileController_GetMyBrandProfile_None(t *testing.T) {
	// A user without a brand profile gets 200 with null data, not 404.
	c := NewBrandProfileController(testLogger, &fakeBrandProfileService{})

	req := withActor(httptest.NewRequest(http.MethodGet, "/brand-profile", nil), domain.Actor{ID: "user-1", Role: domain.RoleUser})
	rec := httptest.NewRecorder()
	c.GetMyBrandProfile(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Nil(t, resp.Error)
	assert.Nil(t, resp.Data)
}

func TestBrandProfileController_CreateBrandProfile(t *testing.T) {
	user := domain.Actor{ID: "user-1", Role: domain.RoleUser}

	t.Run("201 on first registration", func(t *testing.T) {
		svc := &fakeBrandProfileService{}
		c := NewBrandProfileController(testLogger, svc)

		body := []byte(`{"brand_name":"Acme","representative_name":"Kim","email":"kim@acme.com"}`)
		req := withActor(httptest.NewRequest(http.MethodPost, "/brand-profile", bytes.NewReader(body)), user)
		rec := httptest.NewRecorder()
		c.CreateBrandProfile(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, svc.lastCreated)
		assert.Equal(t, "Acme", svc.lastCreated.BrandName)
	})

	t.Run("409 on second registration", func(t *testing.T) {
		svc := &fakeBrandProfileService{createErr: domain.ErrConflict}
		c := NewBrandProfileController(testLogger, svc)

		body := []byte(`{"brand_name":"Acme","representative_name":"Kim","email":"kim@acme.com"}`)
		req := withActor(httptest.NewRequest(http.MethodPost, "/brand-profile", bytes.NewReader(body)), user)
		rec := httptest.NewRecorder()
		c.CreateBrandProfile(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("400 when required fields missing", func(t *testing.T) {
		c := NewBrandProfileController(testLogger, &fakeBrandProfileService{})

		req := withActor(httptest.NewRequest(http.MethodPost, "/brand-profile", bytes.NewReader([]byte(`{}`))), user)
		rec := httptest.NewRecorder()
		c.CreateBrandProfile(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestBrandProfileController_UploadProductImage(t *testing.T) {
	user := domain.Actor{ID: "user-1", Role: domain.RoleUser}

	t.Run("201 with public URL", func(t *testing.T) {
		svc := &fakeBrandProfileService{uploadURL: "https://product-images.s3.ap-northeast-2.amazonaws.com/user-1/x.png"}
		c := NewBrandProfileController(testLogger, svc)

		buf, contentType := multipartBody(t, "file", "product.png", []byte("png-bytes"))
		req := withActor(httptest.NewRequest(http.MethodPost, "/brand-profile/product-images", buf), user)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		c.UploadProductImage(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "product.png", svc.lastUploadedName)
		assert.Equal(t, []byte("png-bytes"), svc.lastUploadedBody)
		resp := decodeEnvelope(t, rec)
		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, svc.uploadURL, data["url"])
	})

	t.Run("400 without file field", func(t *testing.T) {
		c := NewBrandProfileController(testLogger, &fakeBrandProfileService{})

		buf, contentType := multipartBody(t, "attachment", "product.png", []byte("png-bytes"))
		req := withActor(httptest.NewRequest(http.MethodPost, "/brand-profile/product-images", buf), user)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		c.UploadProductImage(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
