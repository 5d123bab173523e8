package zkteco

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"
	"time"
)

// parseAttendance decodes the attendance dataset. The record layout depends on
// firmware and is inferred from the dataset size and the record count.
//
// The 8-byte layout only carries the device-internal uid, which is reported as
// the user id.
func parseAttendance(data []byte, records int, loc *time.Location) ([]Attendance, error) {
	if len(data) < 4 || records <= 0 {
		return nil, nil
	}
	total := int(binary.LittleEndian.Uint32(data))
	data = data[4:]
	recordSize := total / records
	if recordSize <= 0 {
		return nil, fmt.Errorf("zkteco: dataset of %d bytes for %d records: %w", total, records, ErrBadFrame)
	}

	out := make([]Attendance, 0, records)
	switch recordSize {
	case 8:
		for len(data) >= 8 {
			uid := int(binary.LittleEndian.Uint16(data))
			out = append(out, Attendance{
				UID:       uid,
				UserID:    strconv.Itoa(uid),
				Status:    int(data[2]),
				Timestamp: decodeTime(data[3:7], loc),
				Punch:     int(data[7]),
			})
			data = data[8:]
		}
	case 16:
		for len(data) >= 16 {
			out = append(out, Attendance{
				UserID:    strconv.FormatUint(uint64(binary.LittleEndian.Uint32(data)), 10),
				Timestamp: decodeTime(data[4:8], loc),
				Status:    int(data[8]),
				Punch:     int(data[9]),
			})
			data = data[16:]
		}
	default:
		if recordSize < 40 {
			return nil, fmt.Errorf("zkteco: unknown record size %d: %w", recordSize, ErrBadFrame)
		}
		for len(data) >= 40 {
			userID := data[2:26]
			if i := bytes.IndexByte(userID, 0); i >= 0 {
				userID = userID[:i]
			}
			out = append(out, Attendance{
				UID:       int(binary.LittleEndian.Uint16(data)),
				UserID:    string(userID),
				Status:    int(data[26]),
				Timestamp: decodeTime(data[27:31], loc),
				Punch:     int(data[31]),
			})
			data = data[min(recordSize, len(data)):]
		}
	}
	return out, nil
}
