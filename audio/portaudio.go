package audio

import (
	"github.com/gordonklaus/portaudio"

	"nesapu/emu/log"
)

// paSink plays through a PortAudio pull callback: the device asks for a
// block whenever it needs one, the callback drains the ring and pads the
// remainder with silence.
type paSink struct {
	stream *portaudio.Stream
	ring   *Ring
}

func newPortAudioSink(ring *Ring, sampleRate int) (*paSink, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}

	s := &paSink{ring: ring}
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(sampleRate), 0, s.callback)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	s.stream = stream

	log.ModAudio.InfoZ("portaudio stream opened").Int("rate", sampleRate).End()
	return s, nil
}

func (s *paSink) callback(out []float32) {
	n := s.ring.Read(out)
	for i := n; i < len(out); i++ {
		out[i] = 0
	}
}

func (s *paSink) Start() error {
	return s.stream.Start()
}

func (s *paSink) Pause(paused bool) {
	var err error
	if paused {
		err = s.stream.Stop()
	} else {
		err = s.stream.Start()
	}
	if err != nil {
		log.ModAudio.WarnZ("portaudio pause").Bool("paused", paused).Error("err", err).End()
	}
}

func (s *paSink) Close() error {
	err := s.stream.Close()
	portaudio.Terminate()
	return err
}
