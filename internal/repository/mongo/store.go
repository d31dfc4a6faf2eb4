// Package mongo is the MongoDB backend of repository.Store. Uniqueness rules are
// carried by indexes created in Migrate: a partial unique index on cajas.estado
// for open registers, one on (socio_dni, fecha) for cuotas, and unique keys on
// the drink name and member DNI.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gympos/internal/model"
	"gympos/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	colCajas   = "cajas"
	colCierres = "cierres_caja"
	colPagos   = "pagos"
	colBebidas = "bebidas"
	colVentas  = "ventas_bebidas"
	colGastos  = "gastos"
	colSocios  = "socios"
)

var _ repository.Store = (*Store)(nil)

type Store struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Store { return &Store{db: db} }

func (s *Store) col(name string) *mongo.Collection { return s.db.Collection(name) }

func (s *Store) Cajas() repository.CajaRepository         { return cajaRepo{s} }
func (s *Store) Cierres() repository.CierreRepository     { return cierreRepo{s} }
func (s *Store) Pagos() repository.PagoRepository         { return pagoRepo{s} }
func (s *Store) Bebidas() repository.BebidaRepository     { return bebidaRepo{s} }
func (s *Store) Ventas() repository.VentaBebidaRepository { return ventaRepo{s} }
func (s *Store) Gastos() repository.GastoRepository       { return gastoRepo{s} }
func (s *Store) Socios() repository.SocioRepository       { return socioRepo{s} }

// WithinTx runs fn directly: the store does not require a replica set, so there
// are no multi-document transactions.
func (s *Store) WithinTx(_ context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}

// Migrate creates the indexes every collection relies on.
func (s *Store) Migrate(ctx context.Context) error {
	for col, models := range migrationIndexes() {
		if _, err := s.col(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("gympos/mongo: migrate %s indexes: %w", col, err)
		}
	}
	return nil
}

func migrationIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colCajas: {
			{
				Keys: bson.D{{Key: "estado", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_caja_abierta").
					SetPartialFilterExpression(bson.M{"estado": model.CajaAbierta}),
			},
			{Keys: bson.D{{Key: "fecha", Value: 1}}},
		},
		colPagos: {
			{
				Keys: bson.D{{Key: "socio_dni", Value: 1}, {Key: "fecha", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_cuota_dni_fecha").
					SetPartialFilterExpression(bson.M{"tipo": model.PagoCuota}),
			},
			{Keys: bson.D{{Key: "caja_id", Value: 1}}},
			{Keys: bson.D{{Key: "fecha", Value: 1}}},
		},
		colBebidas: {
			{Keys: bson.D{{Key: "nombre_clave", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		colVentas: {
			{Keys: bson.D{{Key: "caja_id", Value: 1}}},
			{Keys: bson.D{{Key: "fecha", Value: 1}}},
		},
		colGastos: {
			{Keys: bson.D{{Key: "caja_id", Value: 1}}},
			{Keys: bson.D{{Key: "fecha", Value: 1}}},
		},
		colSocios: {
			{Keys: bson.D{{Key: "dni", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "fecha_alta", Value: 1}}},
		},
		colCierres: {
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
			{
				Keys: bson.D{{Key: "caja_id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_cierre_completo_caja").
					SetPartialFilterExpression(bson.M{"tipo": model.CierreCompleto}),
			},
		},
	}
}

func now() time.Time { return time.Now().UTC() }

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func ensureTime(t *time.Time) {
	if t.IsZero() {
		*t = now()
	}
}

// translate maps driver errors onto the repository sentinels.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repository.ErrDuplicate
	}
	return fmt.Errorf("gympos/mongo: %s: %w", op, err)
}

func findAll[T any](ctx context.Context, c *mongo.Collection, filter any, sort bson.D) ([]T, error) {
	cur, err := c.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func filtroBSON(f repository.Filtro) bson.M {
	switch {
	case f.CajaID != uuid.Nil:
		return bson.M{"caja_id": f.CajaID.String()}
	case f.Fecha != "":
		return bson.M{"fecha": f.Fecha}
	}
	rango := bson.M{}
	if f.Desde != "" {
		rango["$gte"] = f.Desde
	}
	if f.Hasta != "" {
		rango["$lte"] = f.Hasta
	}
	if len(rango) == 0 {
		return bson.M{}
	}
	return bson.M{"fecha": rango}
}

// ==================== Cajas ====================

type cajaRepo struct{ s *Store }

func (r cajaRepo) Create(ctx context.Context, c *model.Caja) error {
	ensureID(&c.ID)
	ensureTime(&c.OpenedAt)
	if c.Estado == "" {
		c.Estado = model.CajaAbierta
	}
	_, err := r.s.col(colCajas).InsertOne(ctx, toCajaDoc(c))
	return translate("create caja", err)
}

func (r cajaRepo) FindAbierta(ctx context.Context) (*model.Caja, error) {
	return r.findOne(ctx, bson.M{"estado": model.CajaAbierta})
}

func (r cajaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Caja, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r cajaRepo) findOne(ctx context.Context, filter bson.M) (*model.Caja, error) {
	var m cajaDoc
	if err := r.s.col(colCajas).FindOne(ctx, filter).Decode(&m); err != nil {
		return nil, translate("find caja", err)
	}
	return fromCajaDoc(&m), nil
}

func (r cajaRepo) Cerrar(ctx context.Context, id uuid.UUID, closedAt time.Time, t model.TotalesCaja) error {
	set := bson.M{
		"estado":                  model.CajaCerrada,
		"closed_at":               closedAt,
		"total_efectivo":          dec(t.TotalEfectivo),
		"total_electronico":       dec(t.TotalElectronico),
		"total_general":           dec(t.TotalGeneral),
		"cantidad_pagos":          t.CantidadPagos,
		"cantidad_ventas_bebidas": t.CantidadVentasBebidas,
	}
	if t.Observaciones != nil {
		set["observaciones"] = *t.Observaciones
	}
	res, err := r.s.col(colCajas).UpdateOne(ctx,
		bson.M{"_id": id.String(), "estado": model.CajaAbierta},
		bson.M{"$set": set})
	if err != nil {
		return translate("cerrar caja", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ==================== Cierres ====================

type cierreRepo struct{ s *Store }

func (r cierreRepo) Create(ctx context.Context, c *model.CierreCaja) error {
	ensureID(&c.ID)
	ensureTime(&c.CreatedAt)
	m, err := toCierreDoc(c)
	if err != nil {
		return fmt.Errorf("gympos/mongo: encode cierre: %w", err)
	}
	_, err = r.s.col(colCierres).InsertOne(ctx, m)
	return translate("create cierre", err)
}

func (r cierreRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CierreCaja, error) {
	var m cierreDoc
	if err := r.s.col(colCierres).FindOne(ctx, bson.M{"_id": id.String()}).Decode(&m); err != nil {
		return nil, translate("find cierre", err)
	}
	c, err := fromCierreDoc(&m)
	if err != nil {
		return nil, fmt.Errorf("gympos/mongo: decode cierre: %w", err)
	}
	return &c, nil
}

func (r cierreRepo) List(ctx context.Context) ([]model.CierreCaja, error) {
	docs, err := findAll[cierreDoc](ctx, r.s.col(colCierres), bson.M{}, bson.D{{Key: "created_at", Value: -1}})
	if err != nil {
		return nil, translate("list cierres", err)
	}
	out := make([]model.CierreCaja, 0, len(docs))
	for i := range docs {
		c, err := fromCierreDoc(&docs[i])
		if err != nil {
			return nil, fmt.Errorf("gympos/mongo: decode cierre: %w", err)
		}
		out = append(out, c)
	}
	return out, nil
}

// ==================== Pagos ====================

type pagoRepo struct{ s *Store }

func (r pagoRepo) Create(ctx context.Context, p *model.Pago) error {
	ensureID(&p.ID)
	ensureTime(&p.CreatedAt)
	_, err := r.s.col(colPagos).InsertOne(ctx, toPagoDoc(p))
	return translate("create pago", err)
}

func (r pagoRepo) ExisteCuota(ctx context.Context, dni, fecha string) (bool, error) {
	n, err := r.s.col(colPagos).CountDocuments(ctx,
		bson.M{"socio_dni": dni, "fecha": fecha, "tipo": model.PagoCuota})
	if err != nil {
		return false, translate("count cuotas", err)
	}
	return n > 0, nil
}

func (r pagoRepo) List(ctx context.Context, f repository.Filtro) ([]model.Pago, error) {
	docs, err := findAll[pagoDoc](ctx, r.s.col(colPagos), filtroBSON(f), bson.D{{Key: "created_at", Value: 1}})
	if err != nil {
		return nil, translate("list pagos", err)
	}
	out := make([]model.Pago, 0, len(docs))
	for i := range docs {
		out = append(out, fromPagoDoc(&docs[i]))
	}
	return out, nil
}

// ==================== Bebidas ====================

type bebidaRepo struct{ s *Store }

func (r bebidaRepo) Create(ctx context.Context, b *model.Bebida) error {
	ensureID(&b.ID)
	ensureTime(&b.CreatedAt)
	b.UpdatedAt = b.CreatedAt
	_, err := r.s.col(colBebidas).InsertOne(ctx, toBebidaDoc(b))
	return translate("create bebida", err)
}

func (r bebidaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Bebida, error) {
	var m bebidaDoc
	if err := r.s.col(colBebidas).FindOne(ctx, bson.M{"_id": id.String()}).Decode(&m); err != nil {
		return nil, translate("find bebida", err)
	}
	return fromBebidaDoc(&m), nil
}

func (r bebidaRepo) Update(ctx context.Context, b *model.Bebida) error {
	return r.set(ctx, b.ID, bson.M{
		"nombre":       b.Nombre,
		"nombre_clave": nombreClave(b.Nombre),
		"precio":       dec(b.Precio),
		"categoria":    b.Categoria,
	})
}

func (r bebidaRepo) SetActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	return r.set(ctx, id, bson.M{"activo": activo})
}

func (r bebidaRepo) set(ctx context.Context, id uuid.UUID, fields bson.M) error {
	fields["updated_at"] = now()
	res, err := r.s.col(colBebidas).UpdateOne(ctx, bson.M{"_id": id.String()}, bson.M{"$set": fields})
	if err != nil {
		return translate("update bebida", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r bebidaRepo) Reponer(ctx context.Context, id uuid.UUID, cantidad int) (*model.Bebida, error) {
	var m bebidaDoc
	err := r.s.col(colBebidas).FindOneAndUpdate(ctx,
		bson.M{"_id": id.String()},
		bson.M{"$inc": bson.M{"stock": cantidad}, "$set": bson.M{"updated_at": now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&m)
	if err != nil {
		return nil, translate("reponer bebida", err)
	}
	return fromBebidaDoc(&m), nil
}

func (r bebidaRepo) Descontar(ctx context.Context, id uuid.UUID, cantidad int) (int, int, error) {
	var m bebidaDoc
	err := r.s.col(colBebidas).FindOneAndUpdate(ctx,
		bson.M{"_id": id.String(), "activo": true, "stock": bson.M{"$gte": cantidad}},
		bson.M{"$inc": bson.M{"stock": -cantidad}, "$set": bson.M{"updated_at": now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&m)
	if err == nil {
		return m.Stock + cantidad, m.Stock, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return 0, 0, translate("descontar stock", err)
	}

	actual, err := r.FindByID(ctx, id)
	if err != nil {
		return 0, 0, err
	}
	if !actual.Activo {
		return 0, 0, repository.ErrNotFound
	}
	return 0, 0, repository.ErrStockInsuficiente
}

func (r bebidaRepo) List(ctx context.Context, soloDisponibles bool) ([]model.Bebida, error) {
	filter := bson.M{}
	if soloDisponibles {
		filter = bson.M{"activo": true, "stock": bson.M{"$gt": 0}}
	}
	docs, err := findAll[bebidaDoc](ctx, r.s.col(colBebidas), filter, bson.D{{Key: "nombre", Value: 1}})
	if err != nil {
		return nil, translate("list bebidas", err)
	}
	out := make([]model.Bebida, 0, len(docs))
	for i := range docs {
		out = append(out, *fromBebidaDoc(&docs[i]))
	}
	return out, nil
}

// ==================== Ventas / Gastos ====================

type ventaRepo struct{ s *Store }

func (r ventaRepo) Create(ctx context.Context, v *model.VentaBebida) error {
	ensureID(&v.ID)
	ensureTime(&v.CreatedAt)
	_, err := r.s.col(colVentas).InsertOne(ctx, toVentaDoc(v))
	return translate("create venta", err)
}

func (r ventaRepo) List(ctx context.Context, f repository.Filtro) ([]model.VentaBebida, error) {
	docs, err := findAll[ventaDoc](ctx, r.s.col(colVentas), filtroBSON(f), bson.D{{Key: "created_at", Value: 1}})
	if err != nil {
		return nil, translate("list ventas", err)
	}
	out := make([]model.VentaBebida, 0, len(docs))
	for i := range docs {
		out = append(out, fromVentaDoc(&docs[i]))
	}
	return out, nil
}

type gastoRepo struct{ s *Store }

func (r gastoRepo) Create(ctx context.Context, g *model.Gasto) error {
	ensureID(&g.ID)
	ensureTime(&g.CreatedAt)
	_, err := r.s.col(colGastos).InsertOne(ctx, toGastoDoc(g))
	return translate("create gasto", err)
}

func (r gastoRepo) List(ctx context.Context, f repository.Filtro) ([]model.Gasto, error) {
	docs, err := findAll[gastoDoc](ctx, r.s.col(colGastos), filtroBSON(f), bson.D{{Key: "created_at", Value: 1}})
	if err != nil {
		return nil, translate("list gastos", err)
	}
	out := make([]model.Gasto, 0, len(docs))
	for i := range docs {
		out = append(out, fromGastoDoc(&docs[i]))
	}
	return out, nil
}

// ==================== Socios ====================

type socioRepo struct{ s *Store }

func (r socioRepo) Create(ctx context.Context, soc *model.Socio) error {
	ensureID(&soc.ID)
	ensureTime(&soc.FechaAlta)
	_, err := r.s.col(colSocios).InsertOne(ctx, toSocioDoc(soc))
	return translate("create socio", err)
}

func (r socioRepo) FindByDNIs(ctx context.Context, dnis []string) ([]model.Socio, error) {
	if len(dnis) == 0 {
		return nil, nil
	}
	return r.list(ctx, bson.M{"dni": bson.M{"$in": dnis}})
}

func (r socioRepo) List(ctx context.Context, desde, hasta time.Time) ([]model.Socio, error) {
	rango := bson.M{}
	if !desde.IsZero() {
		rango["$gte"] = desde
	}
	if !hasta.IsZero() {
		rango["$lte"] = hasta
	}
	filter := bson.M{}
	if len(rango) > 0 {
		filter["fecha_alta"] = rango
	}
	return r.list(ctx, filter)
}

func (r socioRepo) list(ctx context.Context, filter bson.M) ([]model.Socio, error) {
	docs, err := findAll[socioDoc](ctx, r.s.col(colSocios), filter, bson.D{{Key: "fecha_alta", Value: 1}})
	if err != nil {
		return nil, translate("list socios", err)
	}
	out := make([]model.Socio, 0, len(docs))
	for i := range docs {
		out = append(out, fromSocioDoc(&docs[i]))
	}
	return out, nil
}
