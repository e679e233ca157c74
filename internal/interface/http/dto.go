package handlers

import (
	"time"

	"github.com/oksasatya/user-address-service/internal/domain/entity"
)

// userResponse is the public representation of a user. The password hash is
// never part of it.
type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(u *entity.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserResponses(users []*entity.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

type addressResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Country    string    `json:"country"`
	City       string    `json:"city"`
	Street     string    `json:"street"`
	PostalCode string    `json:"postal_code,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func toAddressResponse(a *entity.Address) addressResponse {
	return addressResponse{
		ID:         a.ID,
		UserID:     a.UserID,
		Country:    a.Country,
		City:       a.City,
		Street:     a.Street,
		PostalCode: a.PostalCode,
		CreatedAt:  a.CreatedAt,
	}
}

func toAddressResponses(addrs []*entity.Address) []addressResponse {
	out := make([]addressResponse, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, toAddressResponse(a))
	}
	return out
}

type jobResponse struct {
	JobID  string               `json:"job_id"`
	Status entity.JobStatus     `json:"status"`
	Result *entity.ExportResult `json:"result,omitempty"`
	Error  string               `json:"error,omitempty"`
}

func toJobResponse(j entity.Job) jobResponse {
	return jobResponse{JobID: j.ID, Status: j.Status, Result: j.Result, Error: j.Error}
}
