package demo

// Simple returns one.
func Simple() int {
	return 1
}

func Branchy(x int, ok bool) int {
	if x > 0 && ok {
		return 1
	}
	for i := 0; i < x; i++ {
		switch i {
		case 1:
			x--
		case 2:
			x++
		default:
		}
	}
	return x // done
}

func Outer() func() int {
	return func() int {
		if true {
			return 1
		}
		return 0
	}
}
