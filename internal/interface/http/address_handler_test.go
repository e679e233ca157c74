package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createAddress(t *testing.T, r *gin.Engine, userID, city string) map[string]any {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/addresses", gin.H{
		"user_id":     userID,
		"country":     "USA",
		"city":        city,
		"street":      "1100 Market St",
		"postal_code": "19107",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	return decodeBody(t, w)
}

func TestCreateAddress(t *testing.T) {
	r := newTestRouter(t)
	userID := createAlice(t, r)

	body := createAddress(t, r, userID, "Philadelphia")
	assert.Equal(t, userID, body["user_id"])
	assert.Equal(t, "Philadelphia", body["city"])
	assert.NotEmpty(t, body["id"])
}

func TestCreateAddressUnknownUser(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/addresses", gin.H{
		"user_id": "2b9e9a3e-7d71-4dcb-8c1a-5c1f0e4b2f33",
		"country": "USA",
		"city":    "Philadelphia",
		"street":  "1100 Market St",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "user_id")
}

func TestCreateAddressValidation(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/addresses", gin.H{
		"user_id": "not-a-uuid",
		"country": "USA",
	}, nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	details := decodeBody(t, w)["details"].(map[string]any)
	assert.Contains(t, details, "user_id")
	assert.Contains(t, details, "city")
	assert.Contains(t, details, "street")
}

func TestGetAddressLinks(t *testing.T) {
	r := newTestRouter(t)
	userID := createAlice(t, r)
	addr := createAddress(t, r, userID, "Philadelphia")
	id := addr["id"].(string)

	w := doJSON(t, r, http.MethodGet, "/addresses/"+id, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	link := w.Header().Get("Link")
	assert.Contains(t, link, "/addresses/"+id+`>; rel="self"`)
	assert.Contains(t, link, "/users/"+userID+`>; rel="user"`)
}

func TestListAddressesFilters(t *testing.T) {
	r := newTestRouter(t)
	userID := createAlice(t, r)
	createAddress(t, r, userID, "Philadelphia")
	createAddress(t, r, userID, "Pittsburgh")

	w := doJSON(t, r, http.MethodGet, "/addresses?user_id="+userID+"&city=phil", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Philadelphia", list[0]["city"])

	w = doJSON(t, r, http.MethodGet, "/addresses?postal_code=00000", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(t, list)
}

func TestUpdateAddress(t *testing.T) {
	r := newTestRouter(t)
	userID := createAlice(t, r)
	addr := createAddress(t, r, userID, "Philadelphia")
	id := addr["id"].(string)

	w := doJSON(t, r, http.MethodPut, "/addresses/"+id, gin.H{"city": "Camden", "postal_code": "08101"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Camden", body["city"])
	assert.Equal(t, "08101", body["postal_code"])
	assert.Equal(t, "1100 Market St", body["street"], "untouched fields survive a partial update")
}

func TestUpdateAddressNotFound(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodPut, "/addresses/2b9e9a3e-7d71-4dcb-8c1a-5c1f0e4b2f33", gin.H{"city": "Camden"}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteAddress(t *testing.T) {
	r := newTestRouter(t)
	userID := createAlice(t, r)
	addr := createAddress(t, r, userID, "Philadelphia")
	id := addr["id"].(string)

	w := doJSON(t, r, http.MethodDelete, "/addresses/"+id, nil, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/addresses/"+id, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
