package example

//go:generate go run github.com/Revolution1/bitfield/cli --type PageFlag

// PageFlag marks what a storage page holds.
//
//bitfield:rw Index SetIndex 0
//bitfield:rw Data SetData 1
//bitfield:rw Full SetFull 2
//bitfield:ro First 3
//bitfield:ro Middle 4
//bitfield:ro Last 5
type PageFlag uint8

// Page header.
type Page struct {
	Flag PageFlag
	// how many kv/index in page
	Count uint16
}
