package harness

import "errors"

// Decoder is the capability every strategy under comparison exposes.
// Decode must be callable repeatedly on the same payload without
// external state, and must either return a complete model or an error.
type Decoder[M any] interface {
	Decode(payload []byte) (M, error)
}

// DecoderFunc adapts a plain function to a Decoder.
type DecoderFunc[M any] func(payload []byte) (M, error)

// Decode calls f(payload).
func (f DecoderFunc[M]) Decode(payload []byte) (M, error) { return f(payload) }

// Check validates a decoded model.
type Check[M any] func(model M) error

// DecodeCase builds the Work for one strategy: decode payload with dec,
// then validate the model with check. The payload is shared and must
// not be modified by dec.
func DecodeCase[M any](dec Decoder[M], payload []byte, check Check[M]) Work {
	return func() error {
		model, err := dec.Decode(payload)
		if err != nil {
			return &DecodeError{Err: err}
		}

		if check == nil {
			return nil
		}

		if err := check(model); err != nil {
			var assertErr *AssertionError
			if errors.As(err, &assertErr) {
				return err
			}

			return &AssertionError{Msg: err.Error()}
		}

		return nil
	}
}
