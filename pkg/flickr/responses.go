package flickr

type response interface {
	status() *envelope
}

type envelope struct {
	Stat string      `xml:"stat,attr"`
	Err  *apiFailure `xml:"err"`
}

func (e *envelope) status() *envelope {
	return e
}

type apiFailure struct {
	Code    int    `xml:"code,attr"`
	Message string `xml:"msg,attr"`
}

type basicResponse struct {
	envelope
}

type photosetListResponse struct {
	envelope
	Photosets struct {
		Page  int               `xml:"page,attr"`
		Pages int               `xml:"pages,attr"`
		Items []photosetElement `xml:"photoset"`
	} `xml:"photosets"`
}

type photosetElement struct {
	ID          string `xml:"id,attr"`
	Primary     string `xml:"primary,attr"`
	Photos      int    `xml:"photos,attr"`
	Title       string `xml:"title"`
	Description string `xml:"description"`
}

type photosetPhotosResponse struct {
	envelope
	Photoset struct {
		ID     string         `xml:"id,attr"`
		Page   int            `xml:"page,attr"`
		Pages  int            `xml:"pages,attr"`
		Photos []photoElement `xml:"photo"`
	} `xml:"photoset"`
}

type photoElement struct {
	ID    string `xml:"id,attr"`
	Title string `xml:"title,attr"`
}

type contextsResponse struct {
	envelope
	Sets []struct {
		ID    string `xml:"id,attr"`
		Title string `xml:"title,attr"`
	} `xml:"set"`
}

type createResponse struct {
	envelope
	Photoset struct {
		ID string `xml:"id,attr"`
	} `xml:"photoset"`
}

type uploadResponse struct {
	envelope
	PhotoID string `xml:"photoid"`
}

type loginResponse struct {
	envelope
	User struct {
		ID       string `xml:"id,attr"`
		Username string `xml:"username"`
	} `xml:"user"`
}
