package generators

import (
	"context"
	"fmt"

	"plantforge/internal/core"
	"plantforge/pkg/domain"
)

type sensorProfile struct {
	Type string
	Unit string
	Lo   float64
	Hi   float64
}

var sensorProfiles = []sensorProfile{
	{"Temperature", "degC", -20, 160},
	{"Pressure", "bar", 0, 25},
	{"Flow", "m3/h", 0, 120},
	{"Level", "%", 0, 100},
	{"pH", "pH", 0, 14},
	{"Conductivity", "mS/cm", 0, 80},
	{"Vibration", "mm/s", 0, 30},
}

var sensorStatuses = []core.Weighted{
	{Value: "OK", Weight: 0.85},
	{Value: "Drift Suspected", Weight: 0.08},
	{Value: "Fault", Weight: 0.04},
	{Value: "Out of Service", Weight: 0.03},
}

var fieldbusProtocols = []string{"HART", "Profibus PA", "Foundation Fieldbus", "IO-Link", "4-20mA"}

// SensorsGenerator emits field sensors attached to equipment. Each sensor
// carries a measurement range consistent with its type.
type SensorsGenerator struct{}

func (SensorsGenerator) Table() string     { return "sensors" }
func (SensorsGenerator) DefaultCount() int { return 120 }

func (SensorsGenerator) Generate(_ context.Context, n int, env *core.Env) (core.GenerateResult, error) {
	ids, err := reserve(env, domain.KindSensor, n)
	if err != nil {
		return core.GenerateResult{}, err
	}
	tbl := domain.NewTable("sensors", []string{
		"sensor_id", "equipment_id", "sensor_type", "unit",
		"range_low", "range_high", "protocol", "last_calibrated", "status",
	})
	start, end := window(env)
	missingEquipment := false
	for _, id := range ids {
		profile := core.Pick(env.Rand, sensorProfiles)
		row := []string{
			string(id),
			sampleRef(env, domain.KindEquipment, &missingEquipment),
			profile.Type,
			profile.Unit,
			num(profile.Lo, 1),
			num(profile.Hi, 1),
			core.Pick(env.Rand, fieldbusProtocols),
			day(core.DateBetween(env.Rand, start, end)),
			core.WeightedPick(env.Rand, sensorStatuses),
		}
		if err := tbl.AppendRow(row); err != nil {
			return core.GenerateResult{}, err
		}
	}
	return core.GenerateResult{Table: tbl}, nil
}

var actuatorTypes = []string{"Control Valve", "On/Off Valve", "VFD Motor", "Damper", "Dosing Pump", "Heater"}

var actuatorFailModes = []core.Weighted{
	{Value: "Fail Closed", Weight: 0.45},
	{Value: "Fail Open", Weight: 0.35},
	{Value: "Fail Last", Weight: 0.2},
}

// ActuatorsGenerator emits actuators attached to equipment.
type ActuatorsGenerator struct{}

func (ActuatorsGenerator) Table() string     { return "actuators" }
func (ActuatorsGenerator) DefaultCount() int { return 60 }

func (ActuatorsGenerator) Generate(_ context.Context, n int, env *core.Env) (core.GenerateResult, error) {
	ids, err := reserve(env, domain.KindActuator, n)
	if err != nil {
		return core.GenerateResult{}, err
	}
	tbl := domain.NewTable("actuators", []string{
		"actuator_id", "equipment_id", "actuator_type", "protocol",
		"fail_mode", "stroke_time_s", "last_serviced", "status",
	})
	start, end := window(env)
	missingEquipment := false
	for _, id := range ids {
		row := []string{
			string(id),
			sampleRef(env, domain.KindEquipment, &missingEquipment),
			core.Pick(env.Rand, actuatorTypes),
			core.Pick(env.Rand, fieldbusProtocols),
			core.WeightedPick(env.Rand, actuatorFailModes),
			num(core.FloatBetween(env.Rand, 0.5, 30), 1),
			day(core.DateBetween(env.Rand, start, end)),
			core.WeightedPick(env.Rand, sensorStatuses),
		}
		if err := tbl.AppendRow(row); err != nil {
			return core.GenerateResult{}, err
		}
	}
	return core.GenerateResult{Table: tbl}, nil
}

var loopModes = []core.Weighted{
	{Value: "Auto", Weight: 0.7},
	{Value: "Manual", Weight: 0.2},
	{Value: "Cascade", Weight: 0.1},
}

// ControlLoopsGenerator emits PID control loops pairing a sensor with an
// actuator.
type ControlLoopsGenerator struct{}

func (ControlLoopsGenerator) Table() string     { return "control_loops" }
func (ControlLoopsGenerator) DefaultCount() int { return 30 }

func (ControlLoopsGenerator) Generate(_ context.Context, n int, env *core.Env) (core.GenerateResult, error) {
	ids, err := reserve(env, domain.KindControlLoop, n)
	if err != nil {
		return core.GenerateResult{}, err
	}
	tbl := domain.NewTable("control_loops", []string{
		"loop_id", "name", "sensor_id", "actuator_id", "setpoint",
		"p_gain", "i_time_s", "d_time_s", "mode",
	})
	missingSensor := false
	missingActuator := false
	for i, id := range ids {
		row := []string{
			string(id),
			fmt.Sprintf("LIC-%03d", i+1),
			sampleRef(env, domain.KindSensor, &missingSensor),
			sampleRef(env, domain.KindActuator, &missingActuator),
			num(core.FloatBetween(env.Rand, 10, 90), 1),
			num(core.FloatBetween(env.Rand, 0.1, 10), 2),
			num(core.FloatBetween(env.Rand, 1, 600), 1),
			num(core.FloatBetween(env.Rand, 0, 60), 1),
			core.WeightedPick(env.Rand, loopModes),
		}
		if err := tbl.AppendRow(row); err != nil {
			return core.GenerateResult{}, err
		}
	}
	return core.GenerateResult{Table: tbl}, nil
}

var readingQualities = []core.Weighted{
	{Value: "Good", Weight: 0.95},
	{Value: "Uncertain", Weight: 0.04},
	{Value: "Bad", Weight: 0.01},
}

// SensorReadingsGenerator streams the time-series reading table, the
// highest-volume table in a run.
type SensorReadingsGenerator struct{}

func (SensorReadingsGenerator) Table() string     { return "sensor_readings" }
func (SensorReadingsGenerator) DefaultCount() int { return 5000 }

func (g SensorReadingsGenerator) Generate(ctx context.Context, n int, env *core.Env) (core.GenerateResult, error) {
	w, err := env.Sink.OpenTable(ctx, g.Table(), []string{
		"reading_id", "sensor_id", "timestamp", "value", "quality",
	})
	if err != nil {
		return core.GenerateResult{}, err
	}
	start, end := window(env)
	missingSensor := false
	for i := 0; i < n; i++ {
		id, err := env.Pools.NewIdentifier(domain.KindReading)
		if err != nil {
			_ = w.Close()
			return core.GenerateResult{}, err
		}
		row := []string{
			string(id),
			sampleRef(env, domain.KindSensor, &missingSensor),
			stamp(core.DateBetween(env.Rand, start, end)),
			num(core.FloatBetween(env.Rand, 0, 150), 3),
			core.WeightedPick(env.Rand, readingQualities),
		}
		if err := w.Append(row); err != nil {
			_ = w.Close()
			return core.GenerateResult{}, err
		}
	}
	if err := w.Close(); err != nil {
		return core.GenerateResult{}, err
	}
	return core.GenerateResult{Rows: n}, nil
}

var diagnosticCodes = []struct {
	Code    string
	Message string
}{
	{"D100", "Self-test passed"},
	{"D210", "Signal noise above threshold"},
	{"D220", "Calibration due"},
	{"D310", "Supply voltage low"},
	{"D320", "Loop current saturated"},
	{"D410", "Internal temperature high"},
}

var diagnosticSeverities = []core.Weighted{
	{Value: "Info", Weight: 0.7},
	{Value: "Warning", Weight: 0.25},
	{Value: "Error", Weight: 0.05},
}

// DeviceDiagnosticsGenerator streams device self-diagnostic events for
// sensors and actuators.
type DeviceDiagnosticsGenerator struct{}

func (DeviceDiagnosticsGenerator) Table() string     { return "device_diagnostics" }
func (DeviceDiagnosticsGenerator) DefaultCount() int { return 500 }

func (g DeviceDiagnosticsGenerator) Generate(ctx context.Context, n int, env *core.Env) (core.GenerateResult, error) {
	w, err := env.Sink.OpenTable(ctx, g.Table(), []string{
		"diagnostic_id", "device_id", "timestamp", "code", "severity", "message",
	})
	if err != nil {
		return core.GenerateResult{}, err
	}
	start, end := window(env)
	missingSensor := false
	missingActuator := false
	for i := 0; i < n; i++ {
		id, err := env.Pools.NewIdentifier(domain.KindDiagnostic)
		if err != nil {
			_ = w.Close()
			return core.GenerateResult{}, err
		}
		device := ""
		if env.Rand.Float64() < 0.65 {
			device = sampleRef(env, domain.KindSensor, &missingSensor)
		} else {
			device = sampleRef(env, domain.KindActuator, &missingActuator)
		}
		diag := core.Pick(env.Rand, diagnosticCodes)
		row := []string{
			string(id),
			device,
			stamp(core.DateBetween(env.Rand, start, end)),
			diag.Code,
			core.WeightedPick(env.Rand, diagnosticSeverities),
			diag.Message,
		}
		if err := w.Append(row); err != nil {
			_ = w.Close()
			return core.GenerateResult{}, err
		}
	}
	if err := w.Close(); err != nil {
		return core.GenerateResult{}, err
	}
	return core.GenerateResult{Rows: n}, nil
}
