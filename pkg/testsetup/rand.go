// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package testsetup

// ScriptedSource plays back fixed sequences so any randomized policy becomes
// deterministic in tests. Intn pops from Ints (reduced modulo n), Float64
// pops from Floats, Shuffle keeps the input order.
type ScriptedSource struct {
	Ints   []int
	Floats []float64
}

func (s *ScriptedSource) Intn(n int) int {
	if len(s.Ints) == 0 {
		return 0
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	if v < 0 {
		v = -v
	}
	return v % n
}

func (s *ScriptedSource) Float64() float64 {
	if len(s.Floats) == 0 {
		return 1
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	return v
}

func (s *ScriptedSource) Shuffle(int, func(i, j int)) {}
