package pptx

import "errors"

// PlaceholderID is the reserved identifier of the shape that receives the
// rendered assessment. Templates mark it either as the shape name or as the
// shape's alt-text description.
const PlaceholderID = "AI_SUMMARY"

var (
	// ErrPlaceholderNotFound means no shape in the deck carries the
	// identifier: the template is missing the placeholder entirely.
	ErrPlaceholderNotFound = errors.New("placeholder shape not found in presentation")

	// ErrPlaceholderNotTextCapable means the identifier is attached to a
	// shape without a text body (a picture or graphic frame): the template
	// is malformed rather than missing.
	ErrPlaceholderNotTextCapable = errors.New("placeholder shape does not support text")
)

// Shape is one located shape. Whether it can hold text is exposed through
// TextFrame rather than probed attribute by attribute.
type Shape struct {
	Name        string
	Description string

	pres      *Presentation
	slidePath string
	id        string
	hasText   bool
}

// TextFrame returns the shape's text capability, or false for shapes that
// cannot hold a paragraph/run model.
func (s *Shape) TextFrame() (*TextFrame, bool) {
	if !s.hasText {
		return nil, false
	}
	return &TextFrame{shape: s}, true
}

// FindShape scans slides in document order and, within a slide, shapes in
// document order, returning the first shape whose name or alt-text
// description equals id.
func (p *Presentation) FindShape(id string) (*Shape, error) {
	for _, slidePath := range p.slidePaths {
		slide, err := p.parseSlide(slidePath)
		if err != nil {
			return nil, err
		}

		for _, sp := range slide.Shapes {
			if sp.CNvPr.Name == id || sp.CNvPr.Descr == id {
				return &Shape{
					Name:        sp.CNvPr.Name,
					Description: sp.CNvPr.Descr,
					pres:        p,
					slidePath:   slidePath,
					id:          id,
					hasText:     sp.TxBody != nil,
				}, nil
			}
		}

		for _, pic := range slide.Pics {
			if pic.CNvPr.Name == id || pic.CNvPr.Descr == id {
				return &Shape{
					Name:        pic.CNvPr.Name,
					Description: pic.CNvPr.Descr,
					pres:        p,
					slidePath:   slidePath,
					id:          id,
				}, nil
			}
		}

		for _, frame := range slide.Frames {
			if frame.CNvPr.Name == id || frame.CNvPr.Descr == id {
				return &Shape{
					Name:        frame.CNvPr.Name,
					Description: frame.CNvPr.Descr,
					pres:        p,
					slidePath:   slidePath,
					id:          id,
				}, nil
			}
		}
	}

	return nil, ErrPlaceholderNotFound
}
