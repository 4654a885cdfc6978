package inventory

import (
	"context"
	"fmt"
	"log"

	"github.com/gocql/gocql"
)

// Nombre d'essais CAS par ligne avant d'abandonner. Un échec CAS signifie
// qu'un checkout concurrent a touché le même stock entre lecture et écriture.
const maxCASRetries = 5

// Line: quantité à réserver sur un produit ou une de ses variations.
type Line struct {
	ProductID   gocql.UUID
	VariationID *gocql.UUID
	Name        string
	Quantity    int
}

// ShortageError: stock insuffisant sur une ligne. La réservation entière est
// annulée: soit toutes les lignes passent, soit aucune.
type ShortageError struct {
	Name      string
	Available int
	Requested int
}

func (e *ShortageError) Error() string {
	return fmt.Sprintf("stock insuffisant pour %s: %d disponible(s), %d demandé(s)", e.Name, e.Available, e.Requested)
}

// StockStore: accès conditionnel au stock. L'implémentation ScyllaDB utilise
// des LWT (UPDATE ... IF stock = ?); les tests utilisent un store en mémoire
// avec la même sémantique compare-and-set.
type StockStore interface {
	Stock(ctx context.Context, line Line) (int, error)
	CompareAndSet(ctx context.Context, line Line, old, new int) (bool, error)
}

// Reserve décrémente le stock de chaque ligne de façon atomique.
//
// Deux checkouts simultanés sur la dernière unité: un seul CAS s'applique,
// l'autre relit, constate le manque et échoue avec ShortageError. En cas
// d'échec sur une ligne, les lignes déjà réservées sont rendues (Release)
// avant de retourner l'erreur: jamais de réservation partielle.
func Reserve(ctx context.Context, store StockStore, lines []Line) error {
	reserved := []Line{}

	for _, line := range lines {
		if err := reserveLine(ctx, store, line); err != nil {
			Release(ctx, store, reserved)
			return err
		}
		reserved = append(reserved, line)
	}

	return nil
}

func reserveLine(ctx context.Context, store StockStore, line Line) error {
	for attempt := 0; attempt < maxCASRetries; attempt++ {
		current, err := store.Stock(ctx, line)
		if err != nil {
			return err
		}

		if current < line.Quantity {
			return &ShortageError{Name: line.Name, Available: current, Requested: line.Quantity}
		}

		applied, err := store.CompareAndSet(ctx, line, current, current-line.Quantity)
		if err != nil {
			return err
		}
		if applied {
			return nil
		}
		// CAS perdu face à un checkout concurrent: on relit et on retente
	}

	return fmt.Errorf("réservation de stock impossible pour %s après %d essais", line.Name, maxCASRetries)
}

// Release rend le stock des lignes données (annulation de réservation).
// Best-effort: une erreur est journalisée mais n'interrompt pas les autres
// lignes.
func Release(ctx context.Context, store StockStore, lines []Line) {
	for _, line := range lines {
		for attempt := 0; attempt < maxCASRetries; attempt++ {
			current, err := store.Stock(ctx, line)
			if err != nil {
				log.Printf("⚠️ Impossible de relire le stock de %s: %v", line.Name, err)
				break
			}

			applied, err := store.CompareAndSet(ctx, line, current, current+line.Quantity)
			if err != nil {
				log.Printf("⚠️ Impossible de rendre le stock de %s: %v", line.Name, err)
				break
			}
			if applied {
				break
			}
		}
	}
}
