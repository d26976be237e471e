package path

// Int는 path 파라미터를 정수로 받습니다.
type Int struct {
	Value int64
}

// String은 path 파라미터를 문자열 그대로 받습니다.
type String struct {
	Value string
}

// Boolean은 path 파라미터를 불리언으로 받습니다. (true/1/yes/y/on)
type Boolean struct {
	Value bool
}
