package constants

// Grid limits
const (
	MaxOrder  = 11
	MaxValues = MaxOrder * MaxOrder
)

// Alphabet maps cell values to characters for single-character grid I/O.
// Value v is written as Alphabet[v-1]. Grids whose value count exceeds
// len(Alphabet) use the comma-separated numeric format instead. '.' and '0'
// always mean an unknown cell and are excluded, as is ',' (the CSV
// separator) and whitespace.
const Alphabet = "123456789" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"abcdefghijklmnopqrstuvwxyz" +
	"!\"#$%&'()*+-/:;<=>?@[\\]^_`{|}~"

// Empty cell markers accepted on input
const (
	EmptyDot  = '.'
	EmptyZero = '0'
)

// Minimum number of shared cells a region pair needs before a redundant
// intersection constraint is emitted for it.
const DefaultMinSharedCells = 2

// Solve outcomes used by the API
const (
	StatusSolved = "solved"
	StatusUnsat  = "unsat"
)

// Variants
const (
	VariantStandard = "standard"
	VariantSudokuX  = "sudoku-x"
)

// API version
const APIVersion = "0.1.0"

// Default ports
const DefaultPort = "8080"
