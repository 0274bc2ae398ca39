package inventory

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be a non-negative whole number")
	ErrInvalidOp       = errors.New("unknown stock operation")
	ErrEmptySelection  = errors.New("no products selected")
	ErrUnknownProduct  = errors.New("product not found")
)

type Op string

const (
	OpSet      Op = "set"
	OpAdd      Op = "add"
	OpSubtract Op = "subtract"
)

func ParseOp(s string) (Op, error) {
	switch op := Op(strings.ToLower(strings.TrimSpace(s))); op {
	case OpSet, OpAdd, OpSubtract:
		return op, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidOp, s)
}

func ParseQuantity(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidQuantity, s)
	}
	return n, nil
}

type StockChange struct {
	ProductID string `json:"product_id"`
	From      int    `json:"from"`
	To        int    `json:"to"`
}

// Apply returns the stock after op; subtract never goes below zero.
func (op Op) Apply(stock, qty int) int {
	switch op {
	case OpSet:
		return qty
	case OpAdd:
		return stock + qty
	case OpSubtract:
		if qty > stock {
			return 0
		}
		return stock - qty
	}
	return stock
}

// Plan computes the change for every selected product. current maps product
// id to its stock. Either every id resolves or nothing is planned.
func Plan(current map[string]int, ids []string, op Op, qty int) ([]StockChange, error) {
	if len(ids) == 0 {
		return nil, ErrEmptySelection
	}
	seen := make(map[string]bool, len(ids))
	out := make([]StockChange, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		stock, ok := current[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProduct, id)
		}
		out = append(out, StockChange{ProductID: id, From: stock, To: op.Apply(stock, qty)})
	}
	return out, nil
}
