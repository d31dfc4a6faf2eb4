package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gympos/internal/dto"
	"gympos/internal/model"
	"gympos/internal/repository"

	"github.com/google/uuid"
)

// SocioService is the minimal member registry the close snapshot reports on.
type SocioService interface {
	Crear(ctx context.Context, req dto.CrearSocioRequest) (*model.Socio, error)
	Listar(ctx context.Context, f dto.SocioFilter) ([]model.Socio, error)
}

type socioService struct {
	store repository.Store
}

func NewSocioService(store repository.Store) SocioService {
	return &socioService{store: store}
}

func (s *socioService) Crear(ctx context.Context, req dto.CrearSocioRequest) (*model.Socio, error) {
	socio := &model.Socio{
		ID:        uuid.New(),
		Nombre:    strings.TrimSpace(req.Nombre),
		DNI:       strings.TrimSpace(req.DNI),
		Actividad: strings.TrimSpace(req.Actividad),
		FechaAlta: time.Now(),
	}
	if socio.Nombre == "" || socio.DNI == "" {
		return nil, fmt.Errorf("%w: nombre y DNI son obligatorios", ErrValidacion)
	}
	if err := s.store.Socios().Create(ctx, socio); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: ya existe un socio con DNI %s", ErrSocioDuplicado, socio.DNI)
		}
		return nil, storeErr("crear socio", err)
	}
	return socio, nil
}

func (s *socioService) Listar(ctx context.Context, f dto.SocioFilter) ([]model.Socio, error) {
	var desde, hasta time.Time
	if f.Desde != "" {
		d, err := time.ParseInLocation(fechaLayout, f.Desde, time.Local)
		if err != nil {
			return nil, validarFecha(f.Desde)
		}
		desde = d
	}
	if f.Hasta != "" {
		h, err := time.ParseInLocation(fechaLayout, f.Hasta, time.Local)
		if err != nil {
			return nil, validarFecha(f.Hasta)
		}
		// whole day
		hasta = h.Add(24*time.Hour - time.Nanosecond)
	}
	socios, err := s.store.Socios().List(ctx, desde, hasta)
	if err != nil {
		return nil, storeErr("listar socios", err)
	}
	return socios, nil
}
