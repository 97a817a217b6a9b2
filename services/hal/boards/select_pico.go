//go:build board_pico

package boards

const selected = Pico
