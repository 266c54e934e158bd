// Package validation reúne los predicados puros que validan la entrada del operador
// antes de tocar la persistencia. Ninguna función tiene efectos secundarios.
package validation

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Tiendas-ops/internal/domain"
)

const (
	PasswordMinLen = 5
	PasswordMaxLen = 11

	CoordinateMin = 0.0
	CoordinateMax = 100.0

	// MaxInt tope de las columnas INTEGER (unidades, ids).
	MaxInt = math.MaxInt32
)

var (
	digitsRe = regexp.MustCompile(`^[0-9]+$`)
	priceRe  = regexp.MustCompile(`^[0-9]+(\.[0-9]{1,2})?$`)
	coordRe  = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)
)

// NormalizeName recorta espacios y normaliza a NFC para comparar nombres de forma canónica.
func NormalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Name falla con ErrEmptyInput si el nombre está vacío.
func Name(s string) error {
	if strings.TrimSpace(s) == "" {
		return domain.ErrEmptyInput
	}
	return nil
}

// Password aplica las reglas de contraseña: distinta del nombre asociado (sensible a
// mayúsculas), longitud entre 5 y 11, al menos una mayúscula, un dígito y un carácter
// fuera de [A-Za-z0-9].
func Password(password, name string) error {
	if password == "" {
		return domain.ErrEmptyInput
	}
	if password == name {
		return domain.ErrPasswordEqualsName
	}
	if !strongPassword(password) {
		return domain.ErrWeakPassword
	}
	return nil
}

func strongPassword(p string) bool {
	n := len([]rune(p))
	if n < PasswordMinLen || n > PasswordMaxLen {
		return false
	}
	var upper, digit, special bool
	for _, r := range p {
		if unicode.IsUpper(r) {
			upper = true
		}
		if r >= '0' && r <= '9' {
			digit = true
		}
		if !isASCIIAlnum(r) {
			special = true
		}
	}
	return upper && digit && special
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// Coordinate acepta solo 0 < v < 100 (límites exclusivos en ambos extremos).
func Coordinate(v float64) error {
	if !(v > CoordinateMin && v < CoordinateMax) {
		return domain.ErrOutOfRange
	}
	return nil
}

// ParseCoordinate interpreta s como decimal y valida el rango.
func ParseCoordinate(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, domain.ErrEmptyInput
	}
	if !coordRe.MatchString(s) {
		return 0, domain.ErrInvalidFormat
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, domain.ErrInvalidFormat
	}
	if err := Coordinate(v); err != nil {
		return 0, err
	}
	return v, nil
}

// NonNegativeInt interpreta s como entero en [0, MaxInt] (solo dígitos).
func NonNegativeInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, domain.ErrEmptyInput
	}
	if !digitsRe.MatchString(s) {
		return 0, domain.ErrInvalidFormat
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > MaxInt {
		return 0, domain.ErrInvalidFormat
	}
	return n, nil
}

// PositiveInt interpreta s como entero > 0.
func PositiveInt(s string) (int, error) {
	n, err := NonNegativeInt(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, domain.ErrInvalidFormat
	}
	return n, nil
}

// ID interpreta s como identificador numérico positivo (tienda, usuario, bodega).
func ID(s string) (int64, error) {
	n, err := PositiveInt(s)
	if err != nil {
		return 0, err
	}
	return int64(n), nil
}

// Price interpreta s como precio no negativo con a lo sumo dos decimales.
func Price(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, domain.ErrEmptyInput
	}
	if !priceRe.MatchString(s) {
		return decimal.Zero, domain.ErrInvalidFormat
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, domain.ErrInvalidFormat
	}
	return d, nil
}
