// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input       string `flag:"i" usage:"input ROM file"`
	Breakpoints string `flag:"break" usage:"comma separated addresses to stop execution at (e.g. 0x200,0x2A4)"`
}

// Flags contains behavior options.
type Flags struct {
	Quirks         string `flag:"quirks" usage:"quirk preset: modern, cosmac" default:"modern"`
	ShiftVY        bool   `flag:"shift-vy" usage:"shift instructions read Vy instead of Vx"`
	IndexIncrement bool   `flag:"index-increment" usage:"block load and store advance the index register"`
	Headless       bool   `flag:"headless" usage:"run without a window and print the final display to the console"`
	Disasm         bool   `flag:"disasm" usage:"print a listing of the program instead of running it"`
	Mute           bool   `flag:"mute" usage:"disable the sound"`
	Trace          bool   `flag:"trace" usage:"log every executed instruction, implies -debug"`
	Debug          bool   `flag:"debug" usage:"enable debug logging"`
	Quiet          bool   `flag:"q" usage:"quiet mode"`
}

// Tuning contains the timing and presentation settings.
type Tuning struct {
	Speed   int    `flag:"speed" usage:"instructions executed per second" default:"700"`
	TimerHz int    `flag:"timer-hz" usage:"timer decrements per second" default:"60"`
	Seed    uint64 `flag:"seed" usage:"random number seed, 0 uses the current time"`
	Scale   int    `flag:"scale" usage:"window scale factor" default:"10"`
	Steps   uint64 `flag:"steps" usage:"headless mode: stop after this many instructions, 0 runs until an error"`
}

// Program options of the virtual machine.
type Program struct {
	Parameters
	Flags
	Tuning

	// set by the command line parser from the explicitly passed quirk flags
	ShiftVYSet        bool
	IndexIncrementSet bool
}
