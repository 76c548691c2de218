package interaction

import "testing"

func TestStoreSetGet(t *testing.T) {
	s := NewStore()

	if v := s.Get(KeySelectedTimeIndex); v != nil {
		t.Errorf("Get on empty store = %v, want nil", v)
	}

	s.Set(KeySelectedTimeIndex, 7)
	if v := s.Get(KeySelectedTimeIndex); v != 7 {
		t.Errorf("Get = %v, want 7", v)
	}

	// Last write wins
	s.Set(KeySelectedTimeIndex, 12)
	if idx, ok := s.SelectedTimeIndex(); !ok || idx != 12 {
		t.Errorf("SelectedTimeIndex = %v, %v; want 12, true", idx, ok)
	}
}

func TestStoreNilClears(t *testing.T) {
	s := NewStore()
	s.Set(KeySelectedTimeIndex, 3)
	s.Set(KeySelectedTimeIndex, nil)

	if _, ok := s.SelectedTimeIndex(); ok {
		t.Error("SelectedTimeIndex should report unset after a nil write")
	}
	if v := s.Get(KeySelectedTimeIndex); v != nil {
		t.Errorf("Get = %v, want nil after clear", v)
	}
}

func TestSelectedTimeIndexZeroIsValid(t *testing.T) {
	s := NewStore()
	s.Set(KeySelectedTimeIndex, 0)
	if idx, ok := s.SelectedTimeIndex(); !ok || idx != 0 {
		t.Errorf("SelectedTimeIndex = %v, %v; want 0, true", idx, ok)
	}
}
