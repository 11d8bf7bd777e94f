//go:build windows

package tray

import (
	"bytes"
	"encoding/binary"
)

// platformIcon wraps the PNG in a single-image ICO container. The Windows
// tray loads icons with LoadImage(IMAGE_ICON), which accepts embedded PNG data.
func platformIcon(png []byte) []byte {
	buf := new(bytes.Buffer)
	// ICONDIR
	binary.Write(buf, binary.LittleEndian, uint16(0)) // reserved
	binary.Write(buf, binary.LittleEndian, uint16(1)) // type: icon
	binary.Write(buf, binary.LittleEndian, uint16(1)) // image count

	// ICONDIRENTRY; 32x32, so width and height fit in a byte
	buf.WriteByte(32)
	buf.WriteByte(32)
	buf.WriteByte(0) // palette
	buf.WriteByte(0) // reserved
	binary.Write(buf, binary.LittleEndian, uint16(1))
	binary.Write(buf, binary.LittleEndian, uint16(32))
	binary.Write(buf, binary.LittleEndian, uint32(len(png)))
	binary.Write(buf, binary.LittleEndian, uint32(6+16))

	buf.Write(png)
	return buf.Bytes()
}
