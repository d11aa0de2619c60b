package web

// phase tags which sub-future of a dispatch is live.
type phase uint8

const (
	extracting phase = iota
	invoking
	responding
	terminal
)

func (p phase) String() string {
	switch p {
	case extracting:
		return "extracting"
	case invoking:
		return "invoking"
	case responding:
		return "responding"
	default:
		return "terminal"
	}
}

// dispatch is the future for one request through an Adapter. It moves
// through extracting → invoking → responding → terminal in place. Only the
// sub-future of the current phase is non-nil; the previous one is dropped on
// each transition.
type dispatch[T, O any] struct {
	handler  Handler[T, O]
	status   int
	renderer ErrorRenderer

	phase   phase
	extract Future[T]
	invoke  Future[O]
	respond Future[Body]

	// head is consumed exactly once, by the transition to terminal.
	head *Head
	resp *Response
}

// Poll advances the dispatch as far as its sub-futures allow. A phase that
// resolves hands over to the next within the same call, so the loop runs at
// most once per phase.
func (d *dispatch[T, O]) Poll(w *Waker) (*Response, bool, error) {
	for {
		switch d.phase {
		case extracting:
			param, ok, err := d.extract.Poll(w)
			if !ok {
				return nil, false, nil
			}
			d.extract = nil
			if err != nil {
				return d.finish(renderError(d.renderer, err, d.takeHead())), true, nil
			}
			d.invoke = d.handler.Call(d.head.Context(), param)
			d.phase = invoking

		case invoking:
			out, ok, err := d.invoke.Poll(w)
			if !ok {
				return nil, false, nil
			}
			d.invoke = nil
			// A handler error is its output; it surfaces when converting to a response.
			if err != nil {
				d.respond = Fail[Body](err)
			} else {
				d.respond = responderFor(out, d.status).Respond(d.head)
			}
			d.phase = responding

		case responding:
			body, ok, err := d.respond.Poll(w)
			if !ok {
				return nil, false, nil
			}
			d.respond = nil
			if err != nil {
				return d.finish(renderError(d.renderer, err, d.takeHead())), true, nil
			}
			return d.finish(NewResponse(d.takeHead(), body)), true, nil

		default:
			return d.resp, true, nil
		}
	}
}

func (d *dispatch[T, O]) finish(resp *Response) *Response {
	d.resp = resp
	d.phase = terminal
	return resp
}

func (d *dispatch[T, O]) takeHead() *Head {
	head := d.head
	if head == nil {
		panic("web: request head consumed twice")
	}
	d.head = nil
	return head
}
