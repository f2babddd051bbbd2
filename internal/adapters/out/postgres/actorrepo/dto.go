// Package actorrepo stores actors and their push device tokens.
package actorrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type ActorDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role string    `gorm:"type:varchar(32);index"`
	Name string
}

func (ActorDTO) TableName() string {
	return "actors"
}

type DeviceTokenDTO struct {
	ActorID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Token     string
	UpdatedAt time.Time
}

func (DeviceTokenDTO) TableName() string {
	return "device_tokens"
}

func fromDomain(a actor.Actor) ActorDTO {
	return ActorDTO{
		ID:   a.ID().Raw(),
		Role: a.Role().String(),
		Name: a.Name(),
	}
}

func toDomain(dto ActorDTO) (actor.Actor, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return actor.Actor{}, err
	}
	role, err := actor.ParseRole(dto.Role)
	if err != nil {
		return actor.Actor{}, err
	}
	return actor.NewActor(id, role, dto.Name)
}
