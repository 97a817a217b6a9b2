//go:build board_nucleo_l053r8 && !board_pico

package boards

const selected = NucleoL053R8
