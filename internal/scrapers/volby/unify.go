package volby

// Table is a rectangular result: every row holds a value for every column,
// in column order.
type Table struct {
	Columns []string
	Rows    []Fields
}

// Unify gives every record the same columns. Non-party columns come first
// in the order they were first seen, followed by parties in the order they
// were first seen. A missing party is 0 votes, any other missing field is
// empty text. A party column only holds vote counts, a record that carries
// the same label as metadata gets 0 there.
func Unify(c *Collection) Table {
	isParty := make(map[string]struct{}, len(c.Parties))
	for _, p := range c.Parties {
		isParty[p] = struct{}{}
	}

	var columns []string
	seen := map[string]struct{}{}
	for _, record := range c.Records {
		for _, f := range record.Fields {
			if _, ok := isParty[f.Name]; ok {
				continue
			}
			if _, ok := seen[f.Name]; ok {
				continue
			}
			seen[f.Name] = struct{}{}
			columns = append(columns, f.Name)
		}
	}
	columns = append(columns, c.Parties...)

	rows := make([]Fields, len(c.Records))
	for i, record := range c.Records {
		row := make(Fields, len(columns))
		for j, name := range columns {
			value, ok := record.Fields.Get(name)
			_, party := isParty[name]
			switch {
			case party && (!ok || value.Kind != KindInt):
				value = Int(0)
			case !ok:
				value = Text("")
			}
			row[j] = Field{Name: name, Value: value}
		}
		rows[i] = row
	}

	return Table{Columns: columns, Rows: rows}
}
