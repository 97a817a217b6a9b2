package ports

import (
	"strconv"
	"strings"

	"portmap-go/errcode"
)

// Bank is a GPIO port bank. The zero value is not a bank.
type Bank uint8

const (
	BankA Bank = iota + 1
	BankB
	BankC
	BankD
	BankE
	BankF
	BankG
	BankH
	BankI
	BankJ
	BankK

	// BankGP is the single flat bank of parts that number pins GP0..GPn.
	BankGP
)

// MaxPinsPerBank bounds pin numbers independent of any family.
const MaxPinsPerBank = 32

func (b Bank) IsValid() bool { return b >= BankA && b <= BankGP }

// Prefix is the textual prefix used by pin names ("PA", "PB", ..., "GP").
func (b Bank) Prefix() string {
	switch {
	case b == BankGP:
		return "GP"
	case b.IsValid():
		return "P" + string(rune('A'+b-BankA))
	default:
		return "P?"
	}
}

func (b Bank) String() string {
	switch {
	case b == BankGP:
		return "GP"
	case b.IsValid():
		return string(rune('A' + b - BankA))
	default:
		return "invalid"
	}
}

// Pin identifies one GPIO by bank and number within the bank.
// Build it with NewPin or Family.Pin; the zero Pin is invalid.
type Pin struct {
	bank Bank
	num  uint8
}

// NewPin validates bank and number against the family-independent limits.
func NewPin(bank Bank, n int) (Pin, error) {
	if !bank.IsValid() {
		return Pin{}, &errcode.E{C: errcode.InvalidPin, Op: "new_pin", Msg: "unknown bank " + strconv.Itoa(int(bank))}
	}
	if n < 0 || n >= MaxPinsPerBank {
		return Pin{}, &errcode.E{C: errcode.InvalidPin, Op: "new_pin", Msg: bank.Prefix() + strconv.Itoa(n) + " out of range"}
	}
	return Pin{bank: bank, num: uint8(n)}, nil
}

// MustPin is NewPin for compiled-in tables; it panics on invalid input.
func MustPin(bank Bank, n int) Pin {
	p, err := NewPin(bank, n)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Pin) Bank() Bank    { return p.bank }
func (p Pin) Number() int   { return int(p.num) }
func (p Pin) IsValid() bool { return p.bank.IsValid() && p.num < MaxPinsPerBank }

func (p Pin) String() string {
	if !p.IsValid() {
		return "NoPin"
	}
	return p.bank.Prefix() + strconv.Itoa(int(p.num))
}

// ParsePin reads the names produced by String ("PA6", "pc13", "GP16").
func ParsePin(s string) (Pin, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	var bank Bank
	var rest string
	switch {
	case strings.HasPrefix(name, "GP"):
		bank, rest = BankGP, name[2:]
	case len(name) >= 2 && name[0] == 'P':
		if name[1] < 'A' || name[1] > 'K' {
			return Pin{}, &errcode.E{C: errcode.InvalidPin, Op: "parse_pin", Msg: "bad bank in " + strconv.Quote(s)}
		}
		bank, rest = Bank(name[1]-'A')+BankA, name[2:]
	default:
		return Pin{}, &errcode.E{C: errcode.InvalidPin, Op: "parse_pin", Msg: "unrecognised pin " + strconv.Quote(s)}
	}
	// One spelling per pin: plain decimal digits, no sign, no leading zero.
	if rest == "" || (len(rest) > 1 && rest[0] == '0') || strings.Trim(rest, "0123456789") != "" {
		return Pin{}, &errcode.E{C: errcode.InvalidPin, Op: "parse_pin", Msg: "bad number in " + strconv.Quote(s)}
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return Pin{}, &errcode.E{C: errcode.InvalidPin, Op: "parse_pin", Msg: "bad number in " + strconv.Quote(s), Err: err}
	}
	return NewPin(bank, n)
}

// MarshalText and UnmarshalText keep pins readable in JSON/YAML exports.
func (p Pin) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Pin) UnmarshalText(b []byte) error {
	v, err := ParsePin(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
