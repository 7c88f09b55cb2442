package models

// GeneratedUnit represents a rendered implementation unit for one target type
type GeneratedUnit struct {
	PackageName string   // package shared by the target and the unit
	UnitName    string   // simple name of the generated class
	FileName    string   // <UnitName>.java
	Content     string   // complete compilation unit
	NestedUnits []string // binary names of nested units, e.g. FooImpl$BarImpl
}

// ClassFiles returns the compiled artifact names the unit is expected to produce
func (u *GeneratedUnit) ClassFiles() []string {
	files := make([]string, 0, len(u.NestedUnits)+1)
	files = append(files, u.UnitName+".class")
	for _, nested := range u.NestedUnits {
		files = append(files, nested+".class")
	}
	return files
}
