package convkit

// encodeTSV writes CSV with a tab delimiter. Quoting rules stay the same, so
// a tab inside a cell is quoted rather than splitting the row.
func encodeTSV(v Value) (string, error) {
	return encodeDelimited(v, TSV, '\t')
}

func decodeTSV(s string) (Value, error) {
	return decodeDelimited(s, TSV, '\t')
}
