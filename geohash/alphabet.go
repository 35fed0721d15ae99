package geohash

// Alphabet maps each 5-bit value to its character. 'a', 'i', 'l' and 'o'
// are left out.
const Alphabet = "0123456789bcdefghjkmnpqrstuvwxyz"

// decodeTable is the inverse of Alphabet, -1 for bytes outside it.
var decodeTable = func() [256]int8 {
	var t [256]int8
	for i := range t {
		t[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		t[Alphabet[i]] = int8(i)
	}
	return t
}()

// IsValid reports whether every character of hash belongs to the alphabet,
// ignoring case.
func IsValid(hash string) bool {
	for i := 0; i < len(hash); i++ {
		if decodeTable[toLower(hash[i])] < 0 {
			return false
		}
	}
	return true
}

func toLower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
