// Package view modela el estado de las pantallas de listado: la colección cargada al montar la
// vista y el último error. Un fallo de mutación no altera las filas ya cargadas.
package view

import "context"

// ListView colección de una pantalla de listado.
type ListView[T any] struct {
	Rows []T
	Err  error
}

// Mount carga la colección. Si falla, Rows queda vacío y Err registra el fallo.
func Mount[T any](ctx context.Context, load func(context.Context) ([]T, error)) *ListView[T] {
	rows, err := load(ctx)
	if err != nil {
		return &ListView[T]{Rows: []T{}, Err: err}
	}
	if rows == nil {
		rows = []T{}
	}
	return &ListView[T]{Rows: rows}
}

// Mutate ejecuta una operación remota (crear, actualizar, eliminar). Devuelve true si tuvo
// éxito; si no, registra el error y deja Rows tal como estaba.
func (v *ListView[T]) Mutate(ctx context.Context, op func(context.Context) error) bool {
	if err := op(ctx); err != nil {
		v.Err = err
		return false
	}
	v.Err = nil
	return true
}

// Find primer elemento que cumple match.
func (v *ListView[T]) Find(match func(T) bool) (T, bool) {
	for _, r := range v.Rows {
		if match(r) {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// Failed indica si la carga o la última mutación fallaron.
func (v *ListView[T]) Failed() bool { return v.Err != nil }
