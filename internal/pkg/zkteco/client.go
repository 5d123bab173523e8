// Package zkteco speaks the TCP protocol of ZKTeco fingerprint terminals:
// session handshake, device enable/disable, buffered reads of the attendance
// log and log clearing.
package zkteco

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"time"
)

// Attendance is one entry of the terminal's attendance log.
type Attendance struct {
	UID       int
	UserID    string
	Timestamp time.Time
	Status    int
	Punch     int
}

type Option func(*Client)

// WithPassword sets the communication key configured on the terminal.
func WithPassword(key int) Option {
	return func(c *Client) { c.password = key }
}

// WithLocation sets the zone device timestamps are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(c *Client) { c.loc = loc }
}

// Client is a single session with one terminal. It is safe for concurrent
// use; commands are serialized.
type Client struct {
	mu       sync.Mutex
	conn     net.Conn
	timeout  time.Duration
	session  uint16
	replyID  uint16
	password int
	loc      *time.Location
	records  int
}

// Dial opens a TCP session and performs the connect handshake.
func Dial(ctx context.Context, address string, port int, timeout time.Duration, opts ...Option) (*Client, error) {
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(address, strconv.Itoa(port)))
	if err != nil {
		return nil, fmt.Errorf("zkteco: dial %s:%d: %w", address, port, err)
	}
	c, err := NewClient(ctx, conn, timeout, opts...)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}

// NewClient runs the handshake over an established connection.
func NewClient(ctx context.Context, conn net.Conn, timeout time.Duration, opts ...Option) (*Client, error) {
	c := &Client{
		conn:    conn,
		timeout: timeout,
		replyID: ushrtMax - 1,
		loc:     time.UTC,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	resp, err := c.send(ctx, CmdConnect, nil)
	if err != nil {
		return nil, err
	}
	c.session = resp.Session

	if resp.Command == CmdAckUnauth {
		resp, err = c.send(ctx, CmdAuth, commKey(c.password, c.session, 50))
		if err != nil {
			return nil, err
		}
		if !resp.ok() {
			return nil, ErrUnauthorized
		}
	}
	if !resp.ok() {
		return nil, &CommandError{Command: CmdConnect, Reply: resp.Command}
	}
	return c, nil
}

// DisableDevice locks the terminal's keypad and sensor.
func (c *Client) DisableDevice(ctx context.Context) error {
	return c.simple(ctx, CmdDisableDevice, nil)
}

func (c *Client) EnableDevice(ctx context.Context) error {
	return c.simple(ctx, CmdEnableDevice, nil)
}

// ClearAttendance deletes every entry of the attendance log.
func (c *Client) ClearAttendance(ctx context.Context) error {
	return c.simple(ctx, CmdClearAttLog, nil)
}

// Close ends the session and closes the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.send(context.Background(), CmdExit, nil)
	if cerr := c.conn.Close(); err == nil {
		err = cerr
	}
	return err
}

// Attendance downloads the full attendance log in device order.
func (c *Client) Attendance(ctx context.Context) ([]Attendance, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.readSizes(ctx); err != nil {
		return nil, err
	}
	if c.records == 0 {
		return nil, nil
	}

	data, err := c.readWithBuffer(ctx, CmdAttLogRRQ, 0, 0)
	if err != nil {
		return nil, err
	}
	return parseAttendance(data, c.records, c.loc)
}

func (c *Client) simple(ctx context.Context, cmd uint16, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	resp, err := c.send(ctx, cmd, payload)
	if err != nil {
		return err
	}
	if !resp.ok() {
		return &CommandError{Command: cmd, Reply: resp.Command}
	}
	return nil
}

func (c *Client) readSizes(ctx context.Context) error {
	resp, err := c.send(ctx, CmdGetFreeSizes, nil)
	if err != nil {
		return err
	}
	if !resp.ok() {
		return &CommandError{Command: CmdGetFreeSizes, Reply: resp.Command}
	}
	if len(resp.Data) >= 80 {
		c.records = int(int32(binary.LittleEndian.Uint32(resp.Data[8*4:])))
	}
	return nil
}

// readWithBuffer asks the device to stage a dataset and pulls it in chunks.
func (c *Client) readWithBuffer(ctx context.Context, cmd uint16, fct, ext int32) ([]byte, error) {
	payload := make([]byte, 11)
	payload[0] = 1
	binary.LittleEndian.PutUint16(payload[1:], cmd)
	binary.LittleEndian.PutUint32(payload[3:], uint32(fct))
	binary.LittleEndian.PutUint32(payload[7:], uint32(ext))

	resp, err := c.send(ctx, CmdPrepareBuffer, payload)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, &CommandError{Command: CmdPrepareBuffer, Reply: resp.Command}
	}
	if resp.Command == CmdData {
		return resp.Data, nil
	}
	if len(resp.Data) < 5 {
		return nil, ErrBadFrame
	}

	size := int(binary.LittleEndian.Uint32(resp.Data[1:5]))
	var buf bytes.Buffer
	buf.Grow(size)
	for start := 0; start < size; start += maxChunk {
		n := min(maxChunk, size-start)
		chunk, err := c.readChunk(ctx, start, n)
		if err != nil {
			return nil, err
		}
		buf.Write(chunk)
	}

	if resp, err := c.send(ctx, CmdFreeData, nil); err != nil {
		return nil, err
	} else if !resp.ok() {
		return nil, &CommandError{Command: CmdFreeData, Reply: resp.Command}
	}
	return buf.Bytes(), nil
}

func (c *Client) readChunk(ctx context.Context, start, size int) ([]byte, error) {
	payload := make([]byte, 8)
	binary.LittleEndian.PutUint32(payload[0:], uint32(start))
	binary.LittleEndian.PutUint32(payload[4:], uint32(size))

	resp, err := c.send(ctx, CmdReadBuffer, payload)
	if err != nil {
		return nil, err
	}

	switch resp.Command {
	case CmdData:
		return resp.Data, nil
	case CmdPrepareData:
		if len(resp.Data) < 4 {
			return nil, ErrBadFrame
		}
		want := int(binary.LittleEndian.Uint32(resp.Data))
		data := make([]byte, 0, want)
		for len(data) < want {
			p, err := c.receive(ctx)
			if err != nil {
				return nil, err
			}
			if p.Command != CmdData {
				return nil, &CommandError{Command: CmdReadBuffer, Reply: p.Command}
			}
			data = append(data, p.Data...)
		}
		ack, err := c.receive(ctx)
		if err != nil {
			return nil, err
		}
		if ack.Command != CmdAckOK {
			return nil, &CommandError{Command: CmdReadBuffer, Reply: ack.Command}
		}
		return data[:want], nil
	}
	return nil, &CommandError{Command: CmdReadBuffer, Reply: resp.Command}
}

func (c *Client) send(ctx context.Context, cmd uint16, payload []byte) (packet, error) {
	if err := ctx.Err(); err != nil {
		return packet{}, err
	}
	c.setDeadline(ctx)

	frame, next := encodePacket(cmd, c.session, c.replyID, payload)
	c.replyID = next
	if _, err := c.conn.Write(frame); err != nil {
		return packet{}, fmt.Errorf("zkteco: send command %d: %w", cmd, err)
	}
	return c.receive(ctx)
}

func (c *Client) receive(ctx context.Context) (packet, error) {
	c.setDeadline(ctx)

	var top [topSize]byte
	if _, err := io.ReadFull(c.conn, top[:]); err != nil {
		return packet{}, fmt.Errorf("zkteco: read frame: %w", err)
	}
	if binary.LittleEndian.Uint16(top[0:]) != magic1 || binary.LittleEndian.Uint16(top[2:]) != magic2 {
		return packet{}, ErrBadFrame
	}
	length := binary.LittleEndian.Uint32(top[4:])
	if length < headerSize || length > maxPacket {
		return packet{}, ErrBadFrame
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(c.conn, body); err != nil {
		return packet{}, fmt.Errorf("zkteco: read frame: %w", err)
	}
	return decodeHeader(body)
}

func (c *Client) setDeadline(ctx context.Context) {
	if c.timeout <= 0 {
		return
	}
	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = c.conn.SetDeadline(deadline)
}
