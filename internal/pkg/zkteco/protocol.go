package zkteco

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

// Command and reply codes of the terminal's TCP protocol.
const (
	CmdConnect       uint16 = 1000
	CmdExit          uint16 = 1001
	CmdEnableDevice  uint16 = 1002
	CmdDisableDevice uint16 = 1003
	CmdAuth          uint16 = 1102
	CmdPrepareData   uint16 = 1500
	CmdData          uint16 = 1501
	CmdFreeData      uint16 = 1502
	CmdPrepareBuffer uint16 = 1503
	CmdReadBuffer    uint16 = 1504
	CmdGetFreeSizes  uint16 = 50
	CmdAttLogRRQ     uint16 = 13
	CmdClearAttLog   uint16 = 15

	CmdAckOK     uint16 = 2000
	CmdAckError  uint16 = 2001
	CmdAckData   uint16 = 2002
	CmdAckUnauth uint16 = 2005
)

const (
	ushrtMax = 65535

	magic1 = 0x5050
	magic2 = 0x7D82

	topSize    = 8
	headerSize = 8

	// maxChunk is the largest buffer slice one READ_BUFFER may request over TCP.
	maxChunk = 0xFFC0

	maxPacket = 1 << 20
)

var (
	ErrBadFrame     = errors.New("zkteco: malformed frame")
	ErrUnauthorized = errors.New("zkteco: device rejected communication key")
)

// CommandError reports a reply code other than the expected acknowledgement.
type CommandError struct {
	Command uint16
	Reply   uint16
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("zkteco: command %d failed with reply %d", e.Command, e.Reply)
}

type packet struct {
	Command uint16
	Session uint16
	ReplyID uint16
	Data    []byte
}

// ok reports whether the reply is one the protocol treats as success.
func (p packet) ok() bool {
	return p.Command == CmdAckOK || p.Command == CmdPrepareData || p.Command == CmdData
}

// checksum folds the header and payload into the 16-bit one's complement sum
// the firmware expects.
func checksum(b []byte) uint16 {
	sum := 0
	for len(b) > 1 {
		sum += int(binary.LittleEndian.Uint16(b))
		b = b[2:]
		if sum > ushrtMax {
			sum -= ushrtMax
		}
	}
	if len(b) == 1 {
		sum += int(b[0])
	}
	for sum > ushrtMax {
		sum -= ushrtMax
	}
	sum = ^sum
	for sum < 0 {
		sum += ushrtMax
	}
	return uint16(sum)
}

// encodePacket builds a framed packet and returns the reply id to use next.
func encodePacket(cmd, session, replyID uint16, payload []byte) ([]byte, uint16) {
	body := make([]byte, headerSize+len(payload))
	binary.LittleEndian.PutUint16(body[0:], cmd)
	binary.LittleEndian.PutUint16(body[4:], session)
	binary.LittleEndian.PutUint16(body[6:], replyID)
	copy(body[headerSize:], payload)
	sum := checksum(body)

	next := int(replyID) + 1
	if next >= ushrtMax {
		next -= ushrtMax
	}
	binary.LittleEndian.PutUint16(body[2:], sum)
	binary.LittleEndian.PutUint16(body[6:], uint16(next))

	frame := make([]byte, topSize, topSize+len(body))
	binary.LittleEndian.PutUint16(frame[0:], magic1)
	binary.LittleEndian.PutUint16(frame[2:], magic2)
	binary.LittleEndian.PutUint32(frame[4:], uint32(len(body)))
	return append(frame, body...), uint16(next)
}

func decodeHeader(body []byte) (packet, error) {
	if len(body) < headerSize {
		return packet{}, ErrBadFrame
	}
	return packet{
		Command: binary.LittleEndian.Uint16(body[0:]),
		Session: binary.LittleEndian.Uint16(body[4:]),
		ReplyID: binary.LittleEndian.Uint16(body[6:]),
		Data:    body[headerSize:],
	}, nil
}

// decodeTime unpacks the terminal's packed timestamp. The device stores wall
// clock time without a zone; it is returned in loc.
func decodeTime(b []byte, loc *time.Location) time.Time {
	t := binary.LittleEndian.Uint32(b)
	sec := int(t % 60)
	t /= 60
	minute := int(t % 60)
	t /= 60
	hour := int(t % 24)
	t /= 24
	day := int(t%31) + 1
	t /= 31
	month := int(t%12) + 1
	t /= 12
	year := int(t) + 2000
	return time.Date(year, time.Month(month), day, hour, minute, sec, 0, loc)
}

func encodeTime(t time.Time) uint32 {
	days := (t.Year()%100)*12*31 + (int(t.Month())-1)*31 + t.Day() - 1
	return uint32(days*86400 + (t.Hour()*60+t.Minute())*60 + t.Second())
}

// commKey scrambles the numeric device password with the session id.
func commKey(key int, session uint16, ticks byte) []byte {
	var k uint32
	for i := 0; i < 32; i++ {
		if key&(1<<i) != 0 {
			k = k<<1 | 1
		} else {
			k <<= 1
		}
	}
	k += uint32(session)

	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, k)
	b[0] ^= 'Z'
	b[1] ^= 'K'
	b[2] ^= 'S'
	b[3] ^= 'O'
	// swap the two 16-bit halves
	b[0], b[1], b[2], b[3] = b[2], b[3], b[0], b[1]

	return []byte{b[0] ^ ticks, b[1] ^ ticks, ticks, b[3] ^ ticks}
}
