package metrics

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
