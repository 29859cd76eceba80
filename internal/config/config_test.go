package config

import (
	"errors"
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
)

func TestQuirks(t *testing.T) {
	tests := []struct {
		name string
		opts options.Program
		want vm.Quirks
	}{
		{
			name: "default preset",
			opts: options.Program{},
			want: vm.Quirks{},
		},
		{
			name: "cosmac preset",
			opts: options.Program{Flags: options.Flags{Quirks: vm.PresetCOSMAC}},
			want: vm.Quirks{ShiftUsesVY: true, LoadStoreIncrementsIndex: true},
		},
		{
			name: "enable shift override",
			opts: options.Program{
				Flags:      options.Flags{Quirks: vm.PresetModern, ShiftVY: true},
				ShiftVYSet: true,
			},
			want: vm.Quirks{ShiftUsesVY: true},
		},
		{
			name: "disable index override",
			opts: options.Program{
				Flags:             options.Flags{Quirks: vm.PresetCOSMAC, IndexIncrement: false},
				IndexIncrementSet: true,
			},
			want: vm.Quirks{ShiftUsesVY: true},
		},
		{
			name: "unset override value is ignored",
			opts: options.Program{Flags: options.Flags{Quirks: vm.PresetCOSMAC}},
			want: vm.Quirks{ShiftUsesVY: true, LoadStoreIncrementsIndex: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Quirks(tt.opts)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuirks_InvalidPreset(t *testing.T) {
	_, err := Quirks(options.Program{Flags: options.Flags{Quirks: "schip"}})
	assert.ErrorContains(t, err, "unsupported quirk preset 'schip'")
}

func TestBreakpoints(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []uint16
	}{
		{"empty", "", nil},
		{"hex", "0x200", []uint16{0x200}},
		{"dollar hex", "$2A4", []uint16{0x2A4}},
		{"decimal", "512", []uint16{0x200}},
		{"list with spaces", "0x200, $300 ,0xFFF", []uint16{0x200, 0x300, 0xFFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Breakpoints(options.Program{Parameters: options.Parameters{Breakpoints: tt.input}})
			assert.NoError(t, err)
			assert.Len(t, got, len(tt.want))
			for i, address := range tt.want {
				assert.Equal(t, address, got[i])
			}
		})
	}
}

func TestBreakpoints_Invalid(t *testing.T) {
	_, err := Breakpoints(options.Program{Parameters: options.Parameters{Breakpoints: "0x200,label"}})
	assert.ErrorContains(t, err, "parsing breakpoint address 'label'")

	_, err = Breakpoints(options.Program{Parameters: options.Parameters{Breakpoints: "0x1000"}})
	assert.True(t, errors.Is(err, vm.ErrOutOfRange))
}

func TestRunner(t *testing.T) {
	opts := options.Program{
		Parameters: options.Parameters{Breakpoints: "0x202"},
		Flags:      options.Flags{Trace: true},
		Tuning:     options.Tuning{Speed: 500, TimerHz: 60},
	}

	cfg, err := Runner(opts)
	assert.NoError(t, err)
	assert.Equal(t, 500, cfg.Speed)
	assert.Equal(t, 60, cfg.TimerHz)
	assert.True(t, cfg.Trace)
	assert.Len(t, cfg.Breakpoints, 1)
	assert.Equal(t, uint16(0x202), cfg.Breakpoints[0])
}

func TestEngine(t *testing.T) {
	engineOptions, err := Engine(options.Program{
		Flags:  options.Flags{Quirks: vm.PresetCOSMAC},
		Tuning: options.Tuning{Seed: 42},
	})
	assert.NoError(t, err)
	assert.Len(t, engineOptions, 2)

	engine := vm.New(engineOptions...)
	assert.True(t, engine.Quirks().ShiftUsesVY)
	assert.True(t, engine.Quirks().LoadStoreIncrementsIndex)
}
