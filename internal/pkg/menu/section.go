package menu

// Capacity is the fixed parameter slot count of a section. Additions past
// it are dropped silently, a limitation carried over from the original
// hardware firmware.
const Capacity = 8

// placeholder is handed out for empty sections so render code never
// observes an absent parameter.
var placeholder = &Parameter{}

// Section is an ordered group of parameters with one current selection.
// Built once at setup time, not safe for concurrent use.
type Section struct {
	params [Capacity]*Parameter
	count  int
	index  int
	clock  Clock
}

func NewSection() *Section {
	return &Section{}
}

// Add appends a parameter. At capacity the parameter is dropped silently.
func (s *Section) Add(p *Parameter) {
	if s.count >= Capacity {
		return
	}
	p.clock = s.clock
	s.params[s.count] = p
	s.count++
}

// Current returns the selected parameter, or a shared placeholder when
// the section is empty.
func (s *Section) Current() *Parameter {
	if s.index >= 0 && s.index < s.count {
		return s.params[s.index]
	}
	return placeholder
}

func (s *Section) Next() {
	if s.count == 0 {
		return
	}
	if s.index < s.count-1 {
		s.index++
	} else {
		s.index = 0
	}
}

func (s *Section) Prev() {
	if s.count == 0 {
		return
	}
	if s.index > 0 {
		s.index--
	} else {
		s.index = s.count - 1
	}
}

// At returns the parameter at position i, or the placeholder when out of
// range. Used for wiring change handlers after a section is built.
func (s *Section) At(i int) *Parameter {
	if i >= 0 && i < s.count {
		return s.params[i]
	}
	return placeholder
}

func (s *Section) Len() int { return s.count }

func (s *Section) Index() int { return s.index }

func (s *Section) setClock(c Clock) {
	s.clock = c
	for i := 0; i < s.count; i++ {
		s.params[i].clock = c
	}
}
