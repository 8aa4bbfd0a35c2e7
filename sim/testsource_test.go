package sim

import "errors"

// Test doubles for RandomSource. The production implementation never
// fails; these let tests force exact draw sequences and failures.

// stubSource returns a fixed uniform value and cycles through a scripted
// list of gamma durations, ignoring shape and scale.
type stubSource struct {
	uniform float64
	gammas  []float64
	next    int
}

func (s *stubSource) Uniform01() (float64, error) {
	return s.uniform, nil
}

func (s *stubSource) Gamma(shape, scale float64) (float64, error) {
	if len(s.gammas) == 0 {
		return 0, errors.New("no gamma draws scripted")
	}
	v := s.gammas[s.next%len(s.gammas)]
	s.next++
	return v, nil
}

// scriptedSource replays independent recorded sequences of uniform and
// gamma draws, mirroring the partitioned production source.
type scriptedSource struct {
	uniforms []float64
	gammas   []float64
	ui, gi   int
}

func (s *scriptedSource) Uniform01() (float64, error) {
	if len(s.uniforms) == 0 {
		return 0, errors.New("no uniform draws scripted")
	}
	v := s.uniforms[s.ui%len(s.uniforms)]
	s.ui++
	return v, nil
}

func (s *scriptedSource) Gamma(shape, scale float64) (float64, error) {
	if len(s.gammas) == 0 {
		return 0, errors.New("no gamma draws scripted")
	}
	v := s.gammas[s.gi%len(s.gammas)]
	s.gi++
	return v, nil
}

// failingSource fails on the chosen draw kind.
type failingSource struct {
	failUniform bool
	failGamma   bool
}

var errProviderDown = errors.New("provider down")

func (s *failingSource) Uniform01() (float64, error) {
	if s.failUniform {
		return 0, errProviderDown
	}
	return 0.5, nil
}

func (s *failingSource) Gamma(shape, scale float64) (float64, error) {
	if s.failGamma {
		return 0, errProviderDown
	}
	return 1, nil
}
