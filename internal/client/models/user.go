// Package models defines the user record persisted locally and the transfer
// shape it is decoded from.
package models

// UserDTO is one element of the remote users payload.
type UserDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// User is the locally persisted user. ID is unique within a store; saving a
// User whose ID already exists overwrites the stored fields.
type User struct {
	ID          int64
	DisplayName string
	Handle      string
	Email       string
}

// UserFromDTO projects a transfer record onto a User field by field.
func UserFromDTO(dto UserDTO) User {
	return User{
		ID:          dto.ID,
		DisplayName: dto.Name,
		Handle:      dto.Username,
		Email:       dto.Email,
	}
}

// UsersFromDTOs maps a batch, keeping its order. A nil batch maps to an
// empty, non-nil slice.
func UsersFromDTOs(dtos []UserDTO) []User {
	users := make([]User, 0, len(dtos))
	for _, dto := range dtos {
		users = append(users, UserFromDTO(dto))
	}
	return users
}
