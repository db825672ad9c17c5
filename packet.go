// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package tlscore

import (
	"fmt"

	"github.com/veridiantls/tlscore/pkg/protocol/alert"
	"github.com/veridiantls/tlscore/pkg/protocol/handshake"
	"github.com/veridiantls/tlscore/pkg/protocol/recordlayer"
)

// Packet is the semantic event the record classifier yields. It is a
// closed union; a switch over a Packet's concrete type should end in a
// panicking default arm.
type Packet interface {
	isPacket()
}

// AppData is a passthrough application-data payload; classifying it
// never mutates state.
type AppData struct {
	Bytes []byte
}

func (AppData) isPacket() {}

// AlertPacket carries one or more decoded alerts.
type AlertPacket struct {
	Alerts []alert.Alert
}

func (AlertPacket) isPacket() {}

// ChangeCipherSpecPacket marks a successfully validated CCS record; by
// the time it is returned, SwitchReceiveCipher has already been called.
type ChangeCipherSpecPacket struct{}

func (ChangeCipherSpecPacket) isPacket() {}

// HandshakePacket carries one or more decoded handshake messages, in
// wire order, decoded from a single record's fragment.
type HandshakePacket struct {
	Messages []handshake.Message
}

func (HandshakePacket) isPacket() {}

// ProcessPacket maps one already-decrypted plaintext record to a Packet
// event. It is pure with respect to the record's payload but reads (and,
// for ChangeCipherSpec, writes) state: switcher.SwitchReceiveCipher is
// invoked synchronously before ProcessPacket returns a ChangeCipherSpecPacket.
func ProcessPacket(s *SessionState, codec Codec, switcher ReceiveCipherSwitcher, rec recordlayer.Record) (Packet, error) {
	switch rec.Type {
	case recordlayer.ContentTypeApplicationData:
		return AppData{Bytes: rec.Fragment}, nil

	case recordlayer.ContentTypeAlert:
		alerts, err := codec.DecodeAlerts(rec.Fragment)
		if err != nil {
			s.errorf("failed to decode alert record: %v", err)
			return nil, &DecodeError{Err: err}
		}
		return AlertPacket{Alerts: alerts}, nil

	case recordlayer.ContentTypeChangeCipherSpec:
		if err := codec.DecodeChangeCipherSpec(rec.Fragment); err != nil {
			s.errorf("failed to decode change_cipher_spec: %v", err)
			return nil, &DecodeError{Err: err}
		}
		if err := switcher.SwitchReceiveCipher(); err != nil {
			return nil, err
		}
		s.logf("receive cipher switched on change_cipher_spec")
		return ChangeCipherSpecPacket{}, nil

	case recordlayer.ContentTypeHandshake:
		params := currentParams(s, rec)
		raws, err := codec.DecodeHandshakes(rec.Fragment)
		if err != nil {
			s.errorf("failed to split handshake fragment: %v", err)
			return nil, &DecodeError{Err: err}
		}
		messages := make([]handshake.Message, 0, len(raws))
		for _, raw := range raws {
			m, err := codec.DecodeHandshake(params, raw)
			if err != nil {
				s.errorf("failed to decode handshake message %s: %v", raw.Type, err)
				return nil, &DecodeError{Err: err}
			}
			messages = append(messages, m)
		}
		return HandshakePacket{Messages: messages}, nil

	case recordlayer.ContentTypeDeprecatedHandshake:
		m, err := codec.DecodeDeprecatedHandshake(rec.Fragment)
		if err != nil {
			s.errorf("failed to decode deprecated handshake: %v", err)
			return nil, &DecodeError{Err: err}
		}
		return HandshakePacket{Messages: []handshake.Message{m}}, nil

	default:
		return nil, &DecodeError{Err: errUnknownContentType(rec.Type)}
	}
}

func errUnknownContentType(t recordlayer.ContentType) error {
	return fmt.Errorf("unknown record content type %s", t)
}

func currentParams(s *SessionState, rec recordlayer.Record) CurrentParams {
	params := CurrentParams{Version: rec.Version, NPNEnabled: s.ExtensionNPN()}
	if s.InHandshake() {
		if cs := s.Handshake().pendingCipher; cs != nil {
			params.PendingKXAlgo = cs.KeyExchangeAlgorithm()
		}
	}
	return params
}
